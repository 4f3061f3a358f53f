package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NetworkConfigTestSuite struct {
	suite.Suite
}

func (suite *NetworkConfigTestSuite) emoney() Network {
	return Network{
		ID:            "emoney-mainnet",
		StakingDenom:  "NGM",
		AddressPrefix: "emoney",
		CoinLookup: []CoinLookup{
			{ChainDenom: "ungm", ViewDenom: "NGM"},
			{ChainDenom: "uchf", ViewDenom: "CHF", ChainToViewConversionFactor: "0.0001"},
		},
	}
}

func (suite *NetworkConfigTestSuite) TestValidate() {
	conf := Network{}
	suite.Require().Error(validateNetworkConf(conf))

	conf.ID = "emoney-mainnet"
	suite.Require().Error(validateNetworkConf(conf))

	conf = suite.emoney()
	suite.Require().NoError(validateNetworkConf(conf))

	conf.CoinLookup[1].ChainToViewConversionFactor = "-1"
	suite.Require().Error(validateNetworkConf(conf))

	conf.CoinLookup[1].ChainToViewConversionFactor = "ten"
	suite.Require().Error(validateNetworkConf(conf))

	conf = suite.emoney()
	conf.CoinLookup[0].ViewDenom = ""
	suite.Require().Error(validateNetworkConf(conf))
}

func (suite *NetworkConfigTestSuite) TestToNetwork() {
	n, err := suite.emoney().ToNetwork()
	suite.Require().NoError(err)

	suite.Require().Equal("emoney-mainnet", n.ID)
	suite.Require().Equal("emoneyvaloper", n.ValidatorPrefix())
	suite.Require().Len(n.CoinLookup, 2)
	suite.Require().True(n.CoinLookup[0].ChainToViewConversionFactor.Equal(decimal.New(1, -6)))
	suite.Require().True(n.GetCoinLookup("CHF", "viewDenom").Factor().Equal(decimal.New(1, -4)))
}

func (suite *NetworkConfigTestSuite) TestToNetworkRejectsBadFactor() {
	conf := suite.emoney()
	conf.CoinLookup[0].ChainToViewConversionFactor = "0"
	_, err := conf.ToNetwork()
	suite.Require().Error(err)
}

func TestNetworkConfigSuite(t *testing.T) {
	suite.Run(t, new(NetworkConfigTestSuite))
}
