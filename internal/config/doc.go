// Package config manages user-level settings stored at ~/.lp3/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the package manager and the default project name used by "lp3 new".
package config
