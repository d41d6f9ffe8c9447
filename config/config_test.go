package config

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDatabase() database {
	return database{Host: "localhost", Port: "5432", Database: "courses", User: "user", Password: "pass"}
}

func TestIndexConfigValidate(t *testing.T) {
	conf := IndexConfig{
		Database: validDatabase(),
		Chain: chain{
			RPC:             "http://localhost:8545",
			ContractAddress: "0x537feaeaae0b3b2df87afb3ca349c1fd118dbcf8",
		},
		Base: indexBase{StartBlock: -1, EndBlock: -1},
	}

	require.NoError(t, conf.Validate())
	assert.Equal(t, "0x537feaEaAe0B3B2dF87AfB3cA349C1fd118DbCf8", conf.Chain.ContractAddress, "contract address should be checksummed")
	assert.Equal(t, "evm", conf.Chain.ChainName)
	assert.Equal(t, uint64(500), conf.Base.BatchSize, "batch size should be defaulted")
	assert.Equal(t, int64(4), conf.Base.RPCWorkers)
}

func TestIndexConfigValidateErrors(t *testing.T) {
	conf := IndexConfig{Database: validDatabase(), Chain: chain{RPC: "localhost:8545", ContractAddress: "0x537feaeaae0b3b2df87afb3ca349c1fd118dbcf8"}}
	assert.ErrorContains(t, conf.Validate(), "scheme")

	conf.Chain.RPC = "ws://localhost:8546"
	conf.Chain.ContractAddress = "not-an-address"
	assert.ErrorContains(t, conf.Validate(), "not a hex address")

	conf.Chain.ContractAddress = "0x537feaeaae0b3b2df87afb3ca349c1fd118dbcf8"
	conf.Base.StartBlock = 100
	conf.Base.EndBlock = 10
	assert.ErrorContains(t, conf.Validate(), "end-block")

	conf.Database.Password = ""
	assert.EqualError(t, conf.Validate(), "database password must be set")
}

func TestServeConfigValidate(t *testing.T) {
	conf := ServeConfig{Database: validDatabase(), Server: server{Port: 4000}}
	require.NoError(t, conf.Validate())
	assert.Equal(t, int64(60), conf.Tasks.CacheWarmEvery)
	assert.Equal(t, int64(3600), conf.Tasks.OrphanEvery)

	conf.Server.Port = 0
	assert.Error(t, conf.Validate())
}

func TestCatalogConfigValidate(t *testing.T) {
	conf := CatalogConfig{Database: validDatabase(), Base: catalogBase{Format: CatalogFormatJSON}}
	assert.NoError(t, conf.Validate())

	conf.Base.Format = "xml"
	assert.ErrorContains(t, conf.Validate(), "unsupported format")
}

func TestWriteDefaultConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, DefaultFileConfig()))

	out := buf.String()
	assert.Contains(t, out, "[database]")
	assert.Contains(t, out, "[chain]")
	assert.Contains(t, out, "batch-size = 500")

	var decoded FileConfig
	_, err := toml.Decode(out, &decoded)
	require.NoError(t, err)
	assert.Equal(t, 4000, decoded.Server.Port)
	assert.Equal(t, int64(-1), decoded.Base.StartBlock)
}
