package configs

import (
	_ "embed"
	"os"

	"github.com/spf13/viper"

	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/resource"
)

//go:embed application.yml
var applicationYAML []byte

//go:embed messages.yml
var messagesYAML []byte

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

var Env *EnvConfig

// Load reads application properties and messages. PROPERTIES_FILE_PATH and
// MESSAGES_FILE_PATH point at files on disk; otherwise the embedded defaults are used.
func Load() error {
	viper.AutomaticEnv()

	if path, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		if err := resource.Init(path); err != nil {
			return err
		}
	} else if err := resource.InitFromBytes(applicationYAML); err != nil {
		return err
	}

	if path, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
		if err := msg.Init(path); err != nil {
			return err
		}
	} else if err := msg.InitFromBytes(messagesYAML); err != nil {
		return err
	}

	Env = &EnvConfig{
		ApplicationName: resource.GetStringOrDefault("app.name", "go-todo"),
		ContextPath:     resource.GetStringOrDefault("app.server.context-path", "/go-todo"),
	}
	log.SetName(Env.ApplicationName)
	log.SetLevel(resource.GetStringOrDefault("app.log.level", "info"))
	return nil
}
