package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Storage struct {
	// Bucket is the public bucket holding recipe images. Defaults to
	// <project>-public when empty.
	Bucket string `koanf:"bucket"`
}

type Config struct {
	config.Common

	// Storage is the configuration for image storage.
	Storage Storage `koanf:"storage"`
}
