package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataset/csv"
	"github.com/hchiam/yggdrasil-decision-forests/dataset/dbdataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataset/mongodataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/dataspec/yaml"
	"github.com/hchiam/yggdrasil-decision-forests/model"
	modeljson "github.com/hchiam/yggdrasil-decision-forests/model/json"
	"github.com/hchiam/yggdrasil-decision-forests/model/redisstore"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"

	// Drivers for the SQL dataset backends.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

/*
loadDataSpec reads the dataspec from the YML metadata file at the given
path.
*/
func loadDataSpec(metadataInput string) (*dataspec.DataSpec, error) {
	spec, err := yaml.ReadDataSpecFromFile(metadataInput)
	if err != nil {
		return nil, fmt.Errorf("reading dataspec from %s: %v", metadataInput, err)
	}
	return spec, nil
}

/*
loadForest reads a forest from the JSON file at the given path, using
the given dataspec to validate it.
*/
func loadForest(modelInput string, spec *dataspec.DataSpec) (*model.Forest, error) {
	f, err := os.Open(modelInput)
	if err != nil {
		return nil, fmt.Errorf("opening model at %s: %v", modelInput, err)
	}
	defer f.Close()
	forest, err := modeljson.ReadForest(f, spec)
	if err != nil {
		return nil, fmt.Errorf("reading model at %s: %v", modelInput, err)
	}
	return forest, nil
}

/*
loadDataset reads a dataset described by the given dataspec from the
given input: a PostgreSQL DB connection URL, a MongoDB connection URL,
the path to an SQLite3 (.db) file or the path to a CSV file. For the DB
backends the dataset is read from the table or collection with the
given name.
*/
func loadDataset(ctx context.Context, logf func(string, ...interface{}), dataInput, table string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	if strings.HasPrefix(dataInput, "postgresql://") {
		logf("Opening PostgreSQL connection to %s to read dataset...", dataInput)
		return readSQLDataset(ctx, "postgres", dataInput, table, spec)
	}
	if strings.HasSuffix(dataInput, ".db") {
		logf("Opening SQLite3 file %s to read dataset...", dataInput)
		return readSQLDataset(ctx, "sqlite3", dataInput, table, spec)
	}
	if strings.HasPrefix(dataInput, "mongodb://") {
		logf("Opening MongoDB connection to %s to read dataset...", dataInput)
		return readMongoDataset(ctx, dataInput, table, spec)
	}
	logf("Opening %s to read dataset as CSV...", dataInput)
	d, err := csv.ReadDatasetFromFile(dataInput, spec)
	if err != nil {
		return nil, fmt.Errorf("reading dataset at %s: %v", dataInput, err)
	}
	return d, nil
}

func readSQLDataset(ctx context.Context, driver, dataInput, table string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	db, err := sql.Open(driver, dataInput)
	if err != nil {
		return nil, fmt.Errorf("opening %s dataset at %s: %v", driver, dataInput, err)
	}
	defer db.Close()
	d, err := dbdataset.Read(ctx, db, table, spec)
	if err != nil {
		return nil, fmt.Errorf("reading dataset at %s: %v", dataInput, err)
	}
	return d, nil
}

func readMongoDataset(ctx context.Context, dataInput, collection string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	session, err := mgo.Dial(dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", dataInput, err)
	}
	defer session.Close()
	d, err := mongodataset.Read(ctx, session, collection, spec)
	if err != nil {
		return nil, fmt.Errorf("reading dataset at %s: %v", dataInput, err)
	}
	return d, nil
}

/*
redisModelStore builds a forest store over the redis DB the given URL
points to. The URL must have the form redis://host[:port][/db], with db
the number of the redis DB to use.
*/
func redisModelStore(redisURL, prefix string) (*redisstore.Store, error) {
	u, err := url.Parse(redisURL)
	if err != nil || u.Scheme != "redis" {
		return nil, fmt.Errorf("parsing redis URL %s: not a redis:// URL", redisURL)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		db, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL %s: invalid DB number %q", redisURL, p)
		}
	}
	addr := u.Host
	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}
	rc := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	return redisstore.New(rc, prefix), nil
}
