package config

import (
	"fmt"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gomodule/redigo/redis"
	"github.com/imdario/mergo"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/vayron-digital/modulyn-one-sub000/filestore"
	"github.com/vayron-digital/modulyn-one-sub000/filestore/disk"
	"github.com/vayron-digital/modulyn-one-sub000/notifier"
	"github.com/vayron-digital/modulyn-one-sub000/realtime"
)

const DEVELOPMENT = "development"

// SessionCookieName - Cookie carrying the agent auth payload.
const SessionCookieName = "modulyn_session"

// SessionCookieExpirySecs - 30 days.
const SessionCookieExpirySecs = 30 * 24 * 60 * 60

type DBConf struct {
	Host     string `envconfig:"DB_HOST"`
	Port     int    `envconfig:"DB_PORT"`
	User     string `envconfig:"DB_USER"`
	Name     string `envconfig:"DB_NAME"`
	Password string `envconfig:"DB_PASS"`
}

type Configuration struct {
	AppName            string
	Env                string `envconfig:"ENV"`
	Port               int    `envconfig:"PORT"`
	DBInfo             DBConf
	RedisHost          string `envconfig:"REDIS_HOST"`
	RedisPort          int    `envconfig:"REDIS_PORT"`
	APPDomain          string `envconfig:"APP_DOMAIN"`
	APIDomain          string `envconfig:"API_DOMAIN"`
	UploadDir          string `envconfig:"UPLOAD_DIR"`
	SessionCookieKey   string `envconfig:"SESSION_COOKIE_KEY"`
	SentryDSN          string `envconfig:"SENTRY_DSN"`
	DefaultPhoneRegion string `envconfig:"DEFAULT_PHONE_REGION"`
}

type Services struct {
	Db        *gorm.DB
	Redis     *redis.Pool
	FileStore filestore.FileManager
	Realtime  *realtime.Hub
	Notifier  *notifier.Center
}

var configuration *Configuration
var services *Services
var initiated bool

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

// defaultConfiguration is the last fallback layer. Flags must keep
// zero defaults for these fields, otherwise the env layer can never
// apply.
var defaultConfiguration = Configuration{
	AppName: "app_server",
	Env:     DEVELOPMENT,
	Port:    8080,
	DBInfo: DBConf{
		Host:     "localhost",
		Port:     5432,
		User:     "modulyn",
		Name:     "modulyn",
		Password: "modulyn",
	},
	RedisHost:          "localhost",
	RedisPort:          6379,
	APIDomain:          "localhost:8080",
	APPDomain:          "localhost:3000",
	UploadDir:          "/var/lib/modulyn/uploads",
	DefaultPhoneRegion: "AE",
}

// applyEnvDefaults layers configuration: explicit flags win, the
// MODULYN_* environment fills the gaps (containers), built-in
// defaults fill whatever is still empty.
func applyEnvDefaults(config *Configuration) {
	var fromEnv Configuration
	if err := envconfig.Process("modulyn", &fromEnv); err != nil {
		log.WithError(err).Error("Failed to read env config. Continuing with flags only.")
	} else if err := mergo.Merge(config, fromEnv); err != nil {
		log.WithError(err).Error("Failed to merge env config defaults.")
	}

	if err := mergo.Merge(config, defaultConfiguration); err != nil {
		log.WithError(err).Error("Failed to merge fallback config defaults.")
	}
}

func initSentry() {
	// Error reporting stays unwired unless a DSN is configured.
	if configuration.SentryDSN == "" {
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         configuration.SentryDSN,
		Environment: configuration.Env,
		ServerName:  configuration.AppName,
	})
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry.")
		return
	}
	log.Info("Sentry error reporting initialized.")
}

// SafeFlushSentry flushes buffered sentry events. Deferred from main.
func SafeFlushSentry() {
	if configuration == nil || configuration.SentryDSN == "" {
		return
	}
	sentry.Flush(2 * time.Second)
}

func IsSentryEnabled() bool {
	return configuration != nil && configuration.SentryDSN != ""
}

func newRedisPool(host string, port int) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		MaxActive:   100,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
		},
	}
}

func initServices() error {
	db, err := gorm.Open("postgres", fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		configuration.DBInfo.Host,
		configuration.DBInfo.Port,
		configuration.DBInfo.User,
		configuration.DBInfo.Name,
		configuration.DBInfo.Password))
	if err != nil {
		log.WithError(err).Error("Failed Db initialization.")
		return err
	}

	// Connection pooling and logging.
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.LogMode(IsDevelopment())
	log.Info("Db service initialized.")

	redisPool := newRedisPool(configuration.RedisHost, configuration.RedisPort)

	hub := realtime.NewHub(redisPool)
	go hub.Listen()

	fileStore := disk.New(configuration.UploadDir,
		fmt.Sprintf("https://%s/files", configuration.APIDomain))

	services = &Services{
		Db:        db,
		Redis:     redisPool,
		FileStore: fileStore,
		Realtime:  hub,
		Notifier:  notifier.NewCenter(),
	}

	return nil
}

func Init(config *Configuration) error {
	if initiated {
		return fmt.Errorf("config already initialized")
	}

	applyEnvDefaults(config)
	configuration = config

	initLogging()
	initSentry()

	if err := initServices(); err != nil {
		return err
	}

	initiated = true
	return nil
}

// InitForTest wires the singletons without external connections.
// Handlers that fail before touching the Db stay testable.
func InitForTest(config *Configuration) {
	configuration = config
	services = &Services{
		Realtime: realtime.NewHub(nil),
		Notifier: notifier.NewCenter(),
	}
	initiated = true
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

// GetCacheRedisConnection returns a pooled redis connection. Caller
// closes it.
func GetCacheRedisConnection() redis.Conn {
	return services.Redis.Get()
}

func IsDevelopment() bool {
	return configuration.Env == DEVELOPMENT
}

func GetSessionCookieKey() string {
	return configuration.SessionCookieKey
}

func GetDefaultPhoneRegion() string {
	if configuration == nil || configuration.DefaultPhoneRegion == "" {
		return "AE"
	}
	return configuration.DefaultPhoneRegion
}
