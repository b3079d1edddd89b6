package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command against a throwaway database and
// returns what it printed.
func executeCommand(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return ansi.Strip(out.String()), err
}

func setupCommandTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("THUCHI_CLASSIFIER_SNAPSHOT_DIR", filepath.Join(dir, "models"))
	return filepath.Join(dir, "thuchi.db")
}

func TestVersionCommand(t *testing.T) {
	db := setupCommandTest(t)

	out, err := executeCommand(t, db, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "thuchi dev\n", out)
}

func TestRecordAndReport(t *testing.T) {
	db := setupCommandTest(t)

	out, err := executeCommand(t, db, "", "record", "50000", "ăn", "trưa")
	require.NoError(t, err)
	assert.Contains(t, out, "Số tiền: 50,000 VNĐ")
	assert.Contains(t, out, "Nội dung: ăn trưa")
	assert.Contains(t, out, "Danh mục: Ăn uống")

	out, err = executeCommand(t, db, "", "record", "thu 10000000 lương")
	require.NoError(t, err)
	assert.Contains(t, out, "Danh mục: Lương")

	out, err = executeCommand(t, db, "", "report", "all", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Tổng Thu: 10,000,000 VNĐ")
	assert.Contains(t, out, "Tổng Chi: 50,000 VNĐ")
	assert.Contains(t, out, "Số dư: 9,950,000 VNĐ")
	assert.Contains(t, out, "  - Ăn uống: 50,000 VNĐ")
}

func TestRecordRejected(t *testing.T) {
	db := setupCommandTest(t)

	_, err := executeCommand(t, db, "", "record", "ăn", "trưa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Không tìm thấy số tiền")

	out, err := executeCommand(t, db, "", "report", "all", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Bạn không có giao dịch nào")
}

func TestReportInvalidPeriod(t *testing.T) {
	db := setupCommandTest(t)

	_, err := executeCommand(t, db, "", "report", "year")
	require.Error(t, err)
}

func TestTeachAndRetrain(t *testing.T) {
	db := setupCommandTest(t)

	out, err := executeCommand(t, db, "", "record", "30000", "xúc xích nướng")
	require.NoError(t, err)
	assert.NotContains(t, out, "Danh mục: Ăn vặt")

	out, err = executeCommand(t, db, "", "teach", "chi", "Ăn vặt", "xúc", "xích", "nướng")
	require.NoError(t, err)
	assert.Contains(t, out, `"xúc xích nướng" → Ăn vặt`)

	out, err = executeCommand(t, db, "", "retrain")
	require.NoError(t, err)
	assert.Contains(t, out, "Ăn vặt")

	out, err = executeCommand(t, db, "", "record", "30000", "xúc xích nướng")
	require.NoError(t, err)
	assert.Contains(t, out, "Danh mục: Ăn vặt")
}

func TestTeachInvalidDirection(t *testing.T) {
	db := setupCommandTest(t)

	_, err := executeCommand(t, db, "", "teach", "sideways", "Ăn vặt", "kẹo")
	require.Error(t, err)
}

func TestFileSnapshotBackend(t *testing.T) {
	db := setupCommandTest(t)
	dir := filepath.Join(filepath.Dir(db), "models")
	t.Setenv("THUCHI_CLASSIFIER_SNAPSHOT_BACKEND", "file")

	out, err := executeCommand(t, db, "", "models")
	require.NoError(t, err)
	assert.Contains(t, out, "labels:")

	for _, name := range []string{"income.model", "expense.model"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestChatCommand(t *testing.T) {
	db := setupCommandTest(t)

	out, err := executeCommand(t, db, "50000 ăn trưa\n/all\n/quit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "Danh mục: Ăn uống")
	assert.Contains(t, out, "50,000 VNĐ")
}

func TestImportCommand(t *testing.T) {
	db := setupCommandTest(t)
	input := "# March\n50000 ăn trưa\n\nkhông có số\nthu 10000000 lương\n"

	out, err := executeCommand(t, db, input, "import", "-", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "không có số")

	out, err = executeCommand(t, db, "", "report", "all", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Số dư: 9,950,000 VNĐ")
}

func TestMigrateStatus(t *testing.T) {
	db := setupCommandTest(t)

	out, err := executeCommand(t, db, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version")

	out, err = executeCommand(t, db, "", "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version:")
}

func TestBackupCommands(t *testing.T) {
	db := setupCommandTest(t)

	_, err := executeCommand(t, db, "", "record", "50000 ăn trưa")
	require.NoError(t, err)

	out, err := executeCommand(t, db, "", "backup", "create", "--tag", "before-tet", "-d", "trước Tết")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup before-tet created (1 transactions")

	_, err = executeCommand(t, db, "", "retrain")
	require.NoError(t, err)

	out, err = executeCommand(t, db, "", "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "before-tet")
	assert.Contains(t, out, "trước Tết")
	assert.Contains(t, out, "(auto)")

	out, err = executeCommand(t, db, "", "backup", "verify", "before-tet")
	require.NoError(t, err)
	assert.Contains(t, out, "is intact")

	_, err = executeCommand(t, db, "", "backup", "delete", "before-tet")
	require.NoError(t, err)

	_, err = executeCommand(t, db, "", "backup", "verify", "before-tet")
	require.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2*1024*1024))
}
