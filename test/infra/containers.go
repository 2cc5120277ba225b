package infra

import (
	"context"
	"os"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

type MongoContainer struct {
	C *mongodb.MongoDBContainer
}

// StartMongo starts a MongoDB container and returns a connection URI. If
// overrideURI or STRESS_TEST_MONGO_URI is set, it reuses that deployment.
func StartMongo(ctx context.Context, overrideURI string) (*MongoContainer, string, error) {
	if overrideURI != "" {
		return &MongoContainer{}, overrideURI, nil
	}
	if uri := os.Getenv("STRESS_TEST_MONGO_URI"); uri != "" {
		return &MongoContainer{}, uri, nil
	}

	mongoC, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, "", err
	}

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		return nil, "", err
	}
	return &MongoContainer{C: mongoC}, uri, nil
}

func (m *MongoContainer) Terminate(ctx context.Context) error {
	if m == nil || m.C == nil {
		return nil
	}
	return m.C.Terminate(ctx)
}
