package repository

import (
	"context"
	"os"
	"testing"
	"time"

	testUtils "github.com/DefiantLabs/lunie-core/test/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Backends started for the integration tests. They stay nil when docker is not reachable.
var (
	postgresConn *pgxpool.Pool
	redisClient  *redis.Client
	mongoDB      *mongo.Database
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cleanups []func()

	if dbConf, err := testUtils.SetupTestDatabase(""); err != nil {
		log.Err(err).Msg("Skipping postgres record tests")
	} else {
		cleanups = append(cleanups, dbConf.Clean)
		postgresConn, err = pgxpool.New(ctx, dbConf.DSN())
		if err != nil {
			log.Err(err).Msg("Could not connect pgx to postgres")
		} else if err = MigratePostgres(ctx, postgresConn); err != nil {
			log.Err(err).Msg("Could not migrate postgres")
			postgresConn = nil
		}
	}

	if redisConf, err := testUtils.SetupTestRedis(""); err != nil {
		log.Err(err).Msg("Skipping redis record tests")
	} else {
		cleanups = append(cleanups, redisConf.Clean)
		redisClient = redisConf.Client
	}

	if mongoConf, err := testUtils.SetupTestMongo(""); err != nil {
		log.Err(err).Msg("Skipping mongo record tests")
	} else {
		cleanups = append(cleanups, mongoConf.Clean)
		mongoDB = mongoConf.Database
		if err = MigrateMongo(ctx, mongoDB, DefaultRecordsCollection); err != nil {
			log.Err(err).Msg("Could not migrate mongo")
			mongoDB = nil
		}
	}

	//Run tests
	code := m.Run()

	// You can't defer this because os.Exit doesn't care for defer
	if postgresConn != nil {
		postgresConn.Close()
	}
	for _, clean := range cleanups {
		clean()
	}

	os.Exit(code)
}
