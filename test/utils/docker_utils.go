package utils

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	dockertest "github.com/ory/dockertest/v3"
)

// ErrDockerUnavailable is returned by the fixtures when no docker daemon can be reached. Tests skip on it.
var ErrDockerUnavailable = errors.New("docker is not available")

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randResourceNameSuffix(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

func newPool() (*dockertest.Pool, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}

	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}
	return pool, nil
}

func findOrCreateDockerNetworkByID(pool *dockertest.Pool, optionalDockerNetworkID string) (bool, string, *dockertest.Network, error) {
	var network *dockertest.Network
	var networkName string
	created := true
	if optionalDockerNetworkID == "" {

		// create a docker network and attach to the resource
		networkName = fmt.Sprintf("test-network-%s", randResourceNameSuffix(10))
		n, err := pool.CreateNetwork(networkName)

		if err != nil {
			return created, "", nil, err
		}
		network = n

	} else {
		created = false
		externalNetworks, err := pool.Client.ListNetworks()
		if err != nil {
			return created, "", nil, err
		}

		var foundNetwork int = -1
		for i, externalNetwork := range externalNetworks {
			if externalNetwork.ID == optionalDockerNetworkID {
				foundNetwork = i
				break
			}
		}

		if foundNetwork < 0 {
			return created, "", nil, fmt.Errorf("could not find network by ID: %s", optionalDockerNetworkID)
		}

		networkCast, err := pool.NetworksByName(externalNetworks[foundNetwork].Name)

		if err != nil {
			return created, "", nil, err
		}

		if len(networkCast) == 0 {
			return created, "", nil, fmt.Errorf("could not find network with ID %s by name: %s", optionalDockerNetworkID, externalNetworks[foundNetwork].Name)
		}

		networkName = networkCast[0].Network.Name
		network = &networkCast[0]
	}

	return created, networkName, network, nil
}

// cleanupFunc purges the resource and, when the fixture created it, the network.
func cleanupFunc(pool *dockertest.Pool, resource *dockertest.Resource, network *dockertest.Network, createdNetwork bool) func() {
	return func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("Could not purge resource: %s", err)
		}

		if createdNetwork {
			if err := pool.RemoveNetwork(network); err != nil {
				log.Printf("Could not remove network: %s", err)
			}
		}
	}
}
