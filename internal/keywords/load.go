package keywords

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Load reads the keyword file at path.
//
// A missing file, invalid JSON or a "keywords" value of the wrong shape all
// produce an empty table and a warning. Any other failure (permissions, path
// is a directory, ...) is returned so the caller can decide what to keep.
func Load(path string, logger *log.Logger) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warnf("%s not found, using empty keyword table", path)
			return Empty(), nil
		case errors.As(err, &parseErr):
			logger.Warnf("invalid JSON in %s, using empty keyword table: %v", path, err)
			return Empty(), nil
		default:
			return nil, fmt.Errorf("failed to read keyword file %s: %w", path, err)
		}
	}

	var rules []Rule
	if err := v.UnmarshalKey("keywords", &rules); err != nil {
		logger.Warnf("malformed keywords in %s, using empty keyword table: %v", path, err)
		return Empty(), nil
	}

	table := NewTable(rules)
	logger.Infof("Loaded %d keyword rule(s) from %s", table.Len(), path)
	return table, nil
}
