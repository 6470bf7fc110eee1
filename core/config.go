package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		Address                   string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
		ChatRate                  float64 // messages per second per session
		ChatBurst                 int
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		Build    string
		AppName  string
		WorkDir  string

		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		RollbarToken     string
		SendgridAPIKey   string
		DefaultLang      string

		// MockAuth signs in unknown emails as a demo user instead of rejecting them.
		MockAuth bool
		// DemoRoleSwitch lets any session flip between Admin and User.
		DemoRoleSwitch bool

		AdminName         string
		AdminEmail        string
		AdminPasswordHash string

		PaymentDelay time.Duration
		HistorySize  int

		Server ServerConfig
	}
)

// SessionLifetime is how long a session stays reachable: the refresh window plus the life of the last refreshed token.
func (c ServerConfig) SessionLifetime() time.Duration {
	return c.JWTRefreshExpirationDelta + c.JWTExpirationDelta
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "THK")
	v.SetDefault("secretKey", "k3v!9x@p0q-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$thk")
	v.SetDefault("defaultFromEmail", "THK Learning <noreply@thk.edu>")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultLang", "en")
	v.SetDefault("mockAuth", true)
	v.SetDefault("demoRoleSwitch", true)
	v.SetDefault("adminName", "Admin User")
	v.SetDefault("adminEmail", "admin@thk.edu")
	v.SetDefault("adminPasswordHash", "")
	v.SetDefault("paymentDelay", 2*time.Second)
	v.SetDefault("historySize", 50)
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("chatRate", 1.0)
	v.SetDefault("chatBurst", 5)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("paymentDelay", time.Duration(0))
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:             v.GetBool("debug"),
		TestMode:          v.GetBool("testMode"),
		Env:               env,
		Build:             v.GetString("build"),
		AppName:           v.GetString("appName"),
		WorkDir:           wd,
		SecretKey:         v.GetString("secretKey"),
		DefaultFromEmail:  v.GetString("defaultFromEmail"),
		FrontendBaseURL:   v.GetString("frontendBaseURL"),
		RollbarToken:      v.GetString("rollbarToken"),
		SendgridAPIKey:    v.GetString("sendgridApiKey"),
		DefaultLang:       v.GetString("defaultLang"),
		MockAuth:          v.GetBool("mockAuth"),
		DemoRoleSwitch:    v.GetBool("demoRoleSwitch"),
		AdminName:         v.GetString("adminName"),
		AdminEmail:        CleanString(v.GetString("adminEmail"), true /* lower */),
		AdminPasswordHash: v.GetString("adminPasswordHash"),
		PaymentDelay:      v.GetDuration("paymentDelay"),
		HistorySize:       v.GetInt("historySize"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			DebugHost:                 v.GetString("serverDebugHost"),
			Address:                   v.GetString("serverAddress"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
			ShutdownTimeout:           v.GetDuration("shutdownTimeout"),
			ChatRate:                  v.GetFloat64("chatRate"),
			ChatBurst:                 v.GetInt("chatBurst"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no dotenv, no delays, auth mocked.
func NewTestConfig() *Config {
	return &Config{
		Debug:            false,
		TestMode:         true,
		Env:              "TEST",
		Build:            "test",
		AppName:          "THK",
		SecretKey:        "test-secret",
		DefaultFromEmail: "THK Learning <noreply@thk.edu>",
		FrontendBaseURL:  "http://localhost:3000",
		DefaultLang:      "en",
		MockAuth:         true,
		DemoRoleSwitch:   true,
		AdminName:        "Admin User",
		AdminEmail:       "admin@thk.edu",
		HistorySize:      50,
		Server: ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			ShutdownTimeout:           time.Second,
			ChatRate:                  100,
			ChatBurst:                 100,
		},
	}
}
