package config

type Config interface {
	EnvConfig
	CorsConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Cors
	Sessions
}

func New() Config {
	return mainConfig{}
}
