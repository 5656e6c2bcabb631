package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPort is the port the game server listens on when neither the config
// file nor the command line provides one.
const DefaultPort = 2687

// Config contains all of the configuration options available to the server.
type Config struct {
	// Hostname or IP address on which the server will listen for connections.
	Hostname string `mapstructure:"hostname"`
	// Maximum number of concurrent connections the server will allow.
	MaxConnections int `mapstructure:"max_connections"`

	GameServer struct {
		// Port on which the game server will listen.
		Port int `mapstructure:"port"`
	} `mapstructure:"game_server"`

	Logging struct {
		// Full path to file to which logs will be written. Blank will write to stdout.
		LogFilePath string `mapstructure:"log_file_path"`
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"logging"`

	Database struct {
		// Hostname of the MySQL database instance.
		Host string `mapstructure:"host"`
		// Port on db_host on which the MySQL instance is accepting connections.
		Port int `mapstructure:"port"`
		// Name of the database in MySQL for the game server.
		Name string `mapstructure:"name"`
		// Username and password of a user with full RW privileges to ${name}.
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"database"`

	Seeding struct {
		// Candidate paths for the word list file, tried in order on startup.
		WordListPaths []string `mapstructure:"word_list_paths"`
	} `mapstructure:"seeding"`

	Debugging struct {
		// Log decoded frames to the logger at debug level.
		PacketLoggingEnabled bool `mapstructure:"packet_logging_enabled"`
		// Enable database-level query logging.
		DatabaseLoggingEnabled bool `mapstructure:"database_logging_enabled"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "DRAWGUESS"

func setDefaults() {
	viper.SetDefault("hostname", "0.0.0.0")
	viper.SetDefault("max_connections", 64)
	viper.SetDefault("game_server.port", DefaultPort)
	viper.SetDefault("logging.log_level", "info")
	viper.SetDefault("database.host", "127.0.0.1")
	viper.SetDefault("database.port", 3308)
	viper.SetDefault("database.name", "draw_guess")
	viper.SetDefault("database.username", "root")
	viper.SetDefault("seeding.word_list_paths", []string{
		"src/data/words.txt",
		"data/words.txt",
		"../data/words.txt",
	})
}

// LoadConfig initializes Viper with the contents of the config file under
// configPath. A missing config file is not an error; the defaults mirror the
// docker-compose development setup.
func LoadConfig(configPath string) *Config {
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()

	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Printf("error reading config file: %v", err)
			os.Exit(1)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, database.host can be set using: <envVarPrefix>_DATABASE_HOST
	for _, k := range viper.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := viper.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			fmt.Printf("error binding %s to %s", k, envVarPrefix+"_"+envVar)
			os.Exit(1)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		fmt.Printf("error unmarshaling config object: %v", err)
		os.Exit(1)
	}
	return config
}

// ListenAddress returns the address on which the game server should listen.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.GameServer.Port)
}

const databaseDSNTemplate = "%s:%s@tcp(%s:%d)/%s?parseTime=true"

// DatabaseDSN returns a MySQL DSN generated from the provided config values.
// The connection character set is negotiated separately so that an unsupported
// charset downgrades to a warning instead of a failed connection.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		databaseDSNTemplate,
		c.Database.Username,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
