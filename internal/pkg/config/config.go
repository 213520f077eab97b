package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`
	RedisAddr  string `yaml:"redis_addr"`
	BaseUrl    string `yaml:"base_url"`
	ServerPort string `yaml:"server_port"`
	JWTKeyPath string `yaml:"jwt_key_path"`

	// Facility local time zone and the wall clock time of the daily
	// absence sweep. Per deployment values, never hardcoded.
	FacilityTimezone string `yaml:"facility_timezone"`
	SweepTime        string `yaml:"sweep_time"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if c.JWTKeyPath == "" {
		c.JWTKeyPath = "./private.pem"
	}
	if c.FacilityTimezone == "" {
		c.FacilityTimezone = "Asia/Seoul"
	}
	if c.SweepTime == "" {
		c.SweepTime = "23:00"
	}

	return &c, nil
}
