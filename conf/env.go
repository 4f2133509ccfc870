package conf

import "flag"

// Env deployment environment, selects conf/conf_<env>.yaml
type Env string

const (
	EnvLocal   Env = "loc"
	EnvTest    Env = "test"
	EnvMainnet Env = "pro"
)

var env = flag.String("env", string(EnvLocal), "Environment: loc/test/pro")

// ConfigFile explicit config path, takes precedence over -env when set
var configFile = flag.String("config", "", "Config file path (overrides -env)")

// GetEnv current environment
func GetEnv() Env {
	return Env(*env)
}

// GetYaml config file of the current environment
func GetYaml() string {
	if *configFile != "" {
		return *configFile
	}
	return "./conf/conf_" + *env + ".yaml"
}
