package config

import "os"

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	Production  bool
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

func NewServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	origins := splitCommaList(os.Getenv("CORS_ORIGIN"))
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return &ServerConfig{
		Port:        port,
		CORSOrigins: origins,
		Production:  os.Getenv("APP_ENV") == "production",
	}
}
