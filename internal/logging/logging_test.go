package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"

	"venuspay-go/internal/config"
)

func TestJSONFormat(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := NewWithWriter(&buf, config.LogConfig{Format: "json", Level: "info"})
	logger.Info("payment submitted", "id", 7)

	var line map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &line))
	is.Equal(line["msg"], "payment submitted")
	is.Equal(line["id"], float64(7))
}

func TestLevel(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := NewWithWriter(&buf, config.LogConfig{Format: "text", Level: "warn"})
	is.Equal(logger.GetLevel(), log.WarnLevel)

	logger.Info("hidden")
	is.Equal(buf.Len(), 0)

	logger.Warn("shown")
	is.True(strings.Contains(buf.String(), "shown"))
}

func TestUnknownLevelKeepsDefault(t *testing.T) {
	is := is.New(t)
	logger := NewWithWriter(&bytes.Buffer{}, config.LogConfig{Level: "chatty"})
	is.Equal(logger.GetLevel(), log.InfoLevel)
}
