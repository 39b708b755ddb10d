package resource

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// lookupEnv is swapped in tests
var lookupEnv = os.LookupEnv

// Init loads application properties from a YAML file
func Init(filepath string) error {
	viper.SetConfigFile(filepath)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}
	resolve()
	return nil
}

// InitFromBytes loads application properties from YAML content, used for the embedded defaults
func InitFromBytes(data []byte) error {
	viper.SetConfigType("yml")

	if err := viper.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("fail to read properties: %w", err)
	}
	resolve()
	return nil
}

// resolve flattens the loaded tree and replaces ${ENV:default} values
func resolve() {
	properties := make(map[string]any)
	parsePropertiesMap("", viper.AllSettings(), properties)

	for key, value := range properties {
		viper.Set(key, value)
	}
}

// parsePropertiesMap reads recursively the YAML tree
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${ENV_NAME:default} value; plain strings are returned as is
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := lookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func Get(key string) any {
	return viper.Get(key)
}

func GetString(key string) string {
	return viper.GetString(key)
}

// GetStringOrDefault returns the property or defaultValue when it is empty
func GetStringOrDefault(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}
