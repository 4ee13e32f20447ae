package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Site    SiteConfig    `yaml:"site"`
	XMLRPC  XMLRPCConfig  `yaml:"xmlrpc"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	// MaxBodyBytes 는 XML-RPC 요청 바디의 최대 크기다. 0 이하면 기본값(1MiB)을 사용한다.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

// SiteConfig describes the blog whose posts are served.
type SiteConfig struct {
	URL                string `yaml:"url"`
	Timezone           string `yaml:"timezone"`
	PermalinkStructure string `yaml:"permalink_structure"`
	PostsPerPage       int    `yaml:"posts_per_page"`
}

type XMLRPCConfig struct {
	Methods             []MethodConfig `yaml:"methods"`
	CoauthorsEnabled    bool           `yaml:"coauthors_enabled"`
	PublicationTaxonomy string         `yaml:"publication_taxonomy"`
}

// MethodConfig binds an XML-RPC method name to an output variant ("bdn" or "my").
type MethodConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// Load reads a yaml config file, applies environment overrides and defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes yaml bytes into an AppConfig with overrides and defaults applied.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.DBName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HTTP_LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = "wordpress"
	}
	if c.Site.Timezone == "" {
		c.Site.Timezone = "UTC"
	}
	if c.Site.PostsPerPage <= 0 {
		c.Site.PostsPerPage = 10
	}
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	if c.XMLRPC.PublicationTaxonomy == "" {
		c.XMLRPC.PublicationTaxonomy = "publication"
	}
	if len(c.XMLRPC.Methods) == 0 {
		c.XMLRPC.Methods = []MethodConfig{
			{Name: "bdn.getPosts", Variant: "bdn"},
			{Name: "my.getPosts", Variant: "my"},
		}
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
