package main

import (
	"flag"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	H "github.com/vayron-digital/modulyn-one-sub000/handler"
	mid "github.com/vayron-digital/modulyn-one-sub000/middleware"
)

// ./app --env=development --api_domain=localhost:8080 --app_domain=localhost:3000 --api_http_port=8080 --db_host=localhost --db_port=5432 --db_user=modulyn --db_name=modulyn --db_pass=modulyn --upload_dir=/var/lib/modulyn/uploads
func main() {

	// Flags default to zero values. Fields left unset fall through to
	// the MODULYN_* environment, then to config.defaultConfiguration.
	env := flag.String("env", "", "")
	port := flag.Int("api_http_port", 0, "")

	dbHost := flag.String("db_host", "", "")
	dbPort := flag.Int("db_port", 0, "")
	dbUser := flag.String("db_user", "", "")
	dbName := flag.String("db_name", "", "")
	dbPass := flag.String("db_pass", "", "")

	redisHost := flag.String("redis_host", "", "")
	redisPort := flag.Int("redis_port", 0, "")

	apiDomain := flag.String("api_domain", "", "")
	appDomain := flag.String("app_domain", "", "")

	uploadDir := flag.String("upload_dir", "", "")
	sessionCookieKey := flag.String("session_cookie_key", "", "Key for signing session cookies")
	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")
	defaultPhoneRegion := flag.String("default_phone_region", "", "Region for normalizing national phone numbers")
	flag.Parse()

	config := &C.Configuration{
		AppName: "app_server",
		Env:     *env,
		Port:    *port,
		DBInfo: C.DBConf{
			Host:     *dbHost,
			Port:     *dbPort,
			User:     *dbUser,
			Name:     *dbName,
			Password: *dbPass,
		},
		RedisHost:          *redisHost,
		RedisPort:          *redisPort,
		APIDomain:          *apiDomain,
		APPDomain:          *appDomain,
		UploadDir:          *uploadDir,
		SessionCookieKey:   *sessionCookieKey,
		SentryDSN:          *sentryDSN,
		DefaultPhoneRegion: *defaultPhoneRegion,
	}

	// Initialize configs and connections.
	err := C.Init(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	defer C.SafeFlushSentry()

	r := gin.New()
	// Group based middlewares should be registered on corresponding init methods.
	r.Use(mid.CustomCors())
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())

	// Initialize routes.
	H.InitAppRoutes(r)
	H.InitSDKRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
