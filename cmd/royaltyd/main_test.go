package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startTime = 1600000000

type cmdFunc func(io.Reader, io.Writer, []string) error

// run executes the command in given home directory at given block time
// and returns its output split into lines.
func run(t *testing.T, home string, blockTime int64, fn cmdFunc, args ...string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	args = append([]string{"-home", home, "-log-level", "none", "-time", strconv.FormatInt(blockTime, 10)}, args...)
	err := fn(strings.NewReader(""), &out, args)
	var lines []string
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, err
}

func mustRun(t *testing.T, home string, blockTime int64, fn cmdFunc, args ...string) []string {
	t.Helper()
	lines, err := run(t, home, blockTime, fn, args...)
	require.NoError(t, err)
	return lines
}

func decode(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &doc))
	return doc
}

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "royaltyd")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func TestKeygen(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	seed := strings.Repeat("ab", 32)
	lines := mustRun(t, home, startTime, cmdKeygen, "-seed", seed)
	require.Len(t, lines, 1)

	raw, _ := hex.DecodeString(seed)
	want, err := crypto.DerivePrivateKey(raw, "m/44'/234'/0'")
	require.NoError(t, err)
	assert.Equal(t, want.PublicKey().Address().String(), lines[0])

	lines = mustRun(t, home, startTime, cmdKeyaddr)
	assert.Equal(t, []string{want.PublicKey().Address().String()}, lines)
	lines = mustRun(t, home, startTime, cmdKeyaddr, "-bech32")
	assert.Equal(t, []string{want.PublicKey().Address().Bech32()}, lines)

	_, err = run(t, home, startTime, cmdKeygen)
	assert.Error(t, err, "existing key must not be overwritten")

	other := mustRun(t, home, startTime, cmdKeygen, "-key", filepath.Join(home, "other.key"), "-seed", seed, "-path", "m/44'/234'/1'")
	assert.NotEqual(t, want.PublicKey().Address().String(), other[0])
}

func TestRoyaltyLifecycle(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, home, startTime, cmdKeygen)
	fanKey := filepath.Join(home, "fan.key")
	fan := mustRun(t, home, startTime, cmdKeygen, "-key", fanKey)[0]

	lines := mustRun(t, home, startTime, cmdInit, "-chain-id", "royalty-test", "-fund-vault", "hit=100000000")
	assert.Equal(t, []string{"royalty-test"}, lines)
	_, err := os.Stat(filepath.Join(home, "genesis.json"))
	require.NoError(t, err)

	_, err = run(t, home, startTime, cmdInit)
	assert.Error(t, err, "state can be initialized only once")

	lines = mustRun(t, home, startTime, cmdCreateTrack, "-id", "hit", "-title", "Hit", "-artist", "Band", "-rps", "1000000")
	require.Len(t, lines, 2)
	assert.Equal(t, "TrackCreated", decode(t, lines[0])["kind"])
	assert.Equal(t, "hit", decode(t, lines[1])["data"])

	lines = mustRun(t, home, startTime+10, cmdStream, "-id", "hit", "-streams", "100", "-platform", "radio", "-country", "PL")
	require.Len(t, lines, 1)
	ev := decode(t, lines[0])["event"].(map[string]interface{})
	assert.Equal(t, float64(100000000), ev["revenue_generated"])
	assert.Equal(t, float64(10000), ev["performance_boost"])

	lines = mustRun(t, home, startTime+20, cmdDistribute, "-id", "hit", "-type", "artist", "-recipient", fan)
	require.Len(t, lines, 1)
	ev = decode(t, lines[0])["event"].(map[string]interface{})
	assert.Equal(t, float64(57000000), ev["amount"])
	assert.Equal(t, float64(3000000), ev["protocol_fee"])

	lines = mustRun(t, home, startTime+20, cmdQuery, "-kind", "balance", "-address", fan)
	assert.Equal(t, float64(57000000), decode(t, lines[0])["balance"])
	lines = mustRun(t, home, startTime+20, cmdQuery, "-kind", "vault", "-id", "hit")
	vault := decode(t, lines[0])
	assert.Equal(t, float64(43000000), vault["balance"])
	assert.Equal(t, protocol.VaultAddress("hit").String(), vault["address"])

	// Only the authority may change the fee.
	_, err = run(t, home, startTime+30, cmdUpdateFee, "-key", fanKey, "-fee", "0")
	assert.Error(t, err)

	lines = mustRun(t, home, startTime+40, cmdOpenDispute, "-key", fanKey, "-track", "hit", "-type", "MissingPayment", "-description", "late")
	require.Len(t, lines, 2)
	disputeID := decode(t, lines[1])["data"].(string)
	assert.Equal(t, "DISPUTE_hit_1600000040", disputeID)

	lines = mustRun(t, home, startTime+50, cmdResolveDispute, "-id", disputeID, "-resolution", "redistribute", "-from", "producer", "-to", "artist", "-amount", "1000")
	require.Len(t, lines, 1)
	assert.Equal(t, "DisputeResolved", decode(t, lines[0])["kind"])

	lines = mustRun(t, home, startTime+60, cmdQuery, "-kind", "track", "-id", "hit")
	tr := decode(t, lines[0])
	assert.Equal(t, float64(1000), tr["artist_pool"].(map[string]interface{})["pending"])

	// Cooldown of the last distribution did not elapse yet.
	lines = mustRun(t, home, startTime+3600, cmdTick)
	assert.Empty(t, lines)

	lines = mustRun(t, home, startTime+2*86400, cmdTick)
	require.Len(t, lines, 1)
	assert.Equal(t, "AutoDistributionCompleted", decode(t, lines[0])["kind"])
	ev = decode(t, lines[0])["event"].(map[string]interface{})
	assert.Equal(t, float64(40000000), ev["total_amount"])

	lines = mustRun(t, home, startTime+2*86400, cmdQuery, "-kind", "events")
	var kinds []interface{}
	for _, e := range decodeList(t, lines[0]) {
		kinds = append(kinds, e["kind"])
	}
	assert.Equal(t, []interface{}{
		"TrackCreated",
		"StreamingDataUpdated",
		"RoyaltiesDistributed",
		"DisputeCreated",
		"DisputeResolved",
		"AutoDistributionCompleted",
	}, kinds)

	lines = mustRun(t, home, startTime+2*86400, cmdQuery, "-kind", "protocol")
	p := decode(t, lines[0])
	assert.Equal(t, float64(500), p["fee_percentage"])
	assert.Equal(t, float64(1), p["active_distributions"])

	_, err = run(t, home, startTime, cmdQuery, "-kind", "unknown")
	assert.Error(t, err)
}

func decodeList(t *testing.T, line string) []map[string]interface{} {
	t.Helper()
	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &docs))
	return docs
}

func TestInitializeByMessage(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, home, startTime, cmdKeygen)
	mustRun(t, home, startTime, cmdInit, "-no-protocol")

	_, err := run(t, home, startTime, cmdQuery, "-kind", "protocol")
	assert.Error(t, err)

	lines := mustRun(t, home, startTime, cmdInitialize, "-fee", "250")
	require.Len(t, lines, 1)
	assert.Equal(t, "ProtocolInitialized", decode(t, lines[0])["kind"])

	lines = mustRun(t, home, startTime, cmdUpdateFee, "-fee", "100")
	require.Len(t, lines, 1)
	ev := decode(t, lines[0])["event"].(map[string]interface{})
	assert.Equal(t, float64(250), ev["old_fee_percentage"])
	assert.Equal(t, float64(100), ev["new_fee_percentage"])
}

func TestCommandsRequireInit(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, home, startTime, cmdKeygen)
	_, err := run(t, home, startTime, cmdCreateTrack, "-id", "hit")
	assert.Error(t, err)
}

func TestFlagValues(t *testing.T) {
	funds := vaultFunds{}
	require.NoError(t, funds.Set("a=10"))
	require.NoError(t, funds.Set("a=5"))
	assert.Equal(t, uint64(15), funds["a"])
	assert.Error(t, funds.Set("a"))
	assert.Error(t, funds.Set("a=-1"))

	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	var recipients recipientsValue
	require.NoError(t, recipients.Set(addr.String()+":label:42"))
	require.Len(t, recipients, 1)
	assert.Equal(t, uint64(42), recipients[0].Amount)
	assert.Error(t, recipients.Set(addr.String()+":nobody:42"))
	assert.Error(t, recipients.Set("x:label"))
}

func TestEnv(t *testing.T) {
	const name = "ROYALTYD_TEST_ENV"
	os.Unsetenv(name)
	assert.Equal(t, "fallback", env(name, "fallback"))
	os.Setenv(name, "")
	defer os.Unsetenv(name)
	assert.Equal(t, "", env(name, "fallback"))
}

func TestLoadEnvFiles(t *testing.T) {
	const name = "ROYALTYD_TEST_DOTENV"
	os.Unsetenv(name)
	defer os.Unsetenv(name)

	dir, cleanup := tempHome(t)
	defer cleanup()
	good := filepath.Join(dir, "good.env")
	require.NoError(t, ioutil.WriteFile(good, []byte(name+"=from-file\n"), 0600))
	// A directory passes the existence check but cannot be read.
	broken := filepath.Join(dir, "broken.env")
	require.NoError(t, os.Mkdir(broken, 0700))

	var out bytes.Buffer
	loadEnvFiles(&out, filepath.Join(dir, "missing.env"), broken, good)
	assert.Equal(t, "from-file", os.Getenv(name))
	assert.Contains(t, out.String(), "cannot load "+broken)
	assert.NotContains(t, out.String(), "missing.env")
}
