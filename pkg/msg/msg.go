package msg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	mu       sync.RWMutex
	messages = map[string]string{}
)

// Init loads messages from a YAML file
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read messages %s: %w", filepath, err)
	}
	store(v)
	return nil
}

// InitFromBytes loads messages from YAML content
func InitFromBytes(data []byte) error {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("fail to read messages: %w", err)
	}
	store(v)
	return nil
}

func store(v *viper.Viper) {
	parsed := make(map[string]string)
	parseMessageMap("", v.AllSettings(), parsed)

	mu.Lock()
	defer mu.Unlock()
	for key, value := range parsed {
		messages[key] = value
	}
}

// parseMessageMap reads recursively the yml tree
func parseMessageMap(prefix string, data map[string]any, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			parseMessageMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// GetMessage returns the message for key with {0}, {1}... replaced by args
func GetMessage(key string, args ...any) string {
	mu.RLock()
	msg, exists := messages[key]
	mu.RUnlock()
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		placeholder := "{" + strconv.Itoa(i) + "}"
		var argStr string

		if isPrimitive(arg) {
			argStr = primitiveToString(arg)
		} else if e, ok := arg.(error); ok {
			argStr = e.Error()
		} else {
			jsonBytes, err := json.Marshal(arg)
			if err != nil {
				argStr = fmt.Sprintf("%v", arg)
			} else {
				argStr = string(jsonBytes)
			}
		}

		msg = strings.ReplaceAll(msg, placeholder, argStr)
	}

	return msg
}

// isPrimitive checks if the provided value is of a primitive type (bool, int, uint, float, or string).
func isPrimitive(value any) bool {
	if value == nil {
		return true
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	default:
		return false
	}
}

// primitiveToString converts a primitive value to string using strconv
func primitiveToString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
