package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/database/mongoclient"
	"github.com/cardbay/goapi/base/database/redisclient"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/base/metrics"
	bValidator "github.com/cardbay/goapi/base/validator"
	mmiddleware "github.com/cardbay/goapi/middleware"
	"github.com/cardbay/goapi/service/mailer"
	"github.com/cardbay/goapi/service/payment"
	"github.com/cardbay/goapi/service/query"
	"github.com/cardbay/goapi/service/redis"
	account_delivery "github.com/cardbay/goapi/stores/account/delivery/http"
	account_repository "github.com/cardbay/goapi/stores/account/repository"
	account_usecase "github.com/cardbay/goapi/stores/account/usecase"
	auth_delivery "github.com/cardbay/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/cardbay/goapi/stores/auth/usecase"
	file_repository "github.com/cardbay/goapi/stores/file/repository"
	file_usecase "github.com/cardbay/goapi/stores/file/usecase"
	hc_delivery "github.com/cardbay/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/cardbay/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/cardbay/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/cardbay/goapi/stores/listing/delivery/http"
	listing_repository "github.com/cardbay/goapi/stores/listing/repository"
	listing_usecase "github.com/cardbay/goapi/stores/listing/usecase"
	offer_delivery "github.com/cardbay/goapi/stores/offer/delivery/http"
	offer_repository "github.com/cardbay/goapi/stores/offer/repository"
	offer_usecase "github.com/cardbay/goapi/stores/offer/usecase"
	payment_delivery "github.com/cardbay/goapi/stores/payment/delivery/http"
	payment_usecase "github.com/cardbay/goapi/stores/payment/usecase"
	vendor_delivery "github.com/cardbay/goapi/stores/vendors/delivery/http"
	vendor_repository "github.com/cardbay/goapi/stores/vendors/repository"
	vendor_usecase "github.com/cardbay/goapi/stores/vendors/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	mmiddleware.SetupCache(redisCache)

	// init cloud storage
	context.Info("init cloud storage")
	storageClient, err := storage.NewClient(context)
	if err != nil {
		context.WithField("err", err).Panic("storage.NewClient failed")
	}
	storageWriter, err := file_repository.NewCloudStorageWriterRepo(&file_repository.CloudStorageWriterRepoCfg{
		Timeout:    viper.GetDuration("storage.timeout"),
		Client:     storageClient,
		BucketName: viper.GetString("storage.bucketName"),
		Url:        viper.GetString("storage.url"),
	})
	if err != nil {
		context.WithField("err", err).Panic("NewCloudStorageWriterRepo failed")
	}

	// external collaborators
	gateway := payment.NewGateway(&payment.GatewayCfg{
		HttpClient:  http.Client{},
		Timeout:     viper.GetDuration("payment.timeout"),
		ApiEndpoint: viper.GetString("payment.apiEndpoint"),
		Apikey:      viper.GetString("payment.apikey"),
	})
	mailClient := mailer.NewClient(&mailer.ClientCfg{
		HttpClient:  http.Client{},
		Timeout:     viper.GetDuration("mailer.timeout"),
		ApiEndpoint: viper.GetString("mailer.apiEndpoint"),
		Apikey:      viper.GetString("mailer.apikey"),
		Sender:      viper.GetString("mailer.sender"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	accountRepo := account_repository.New(q, redisCache)
	vendorRepo := vendor_repository.New(q)
	listingRepo := listing_repository.New(q)
	offerRepo := offer_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	file := file_usecase.New(storageWriter)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo:   accountRepo,
		Mailer: mailClient,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	vendor := vendor_usecase.New(&vendor_usecase.VendorUseCaseCfg{
		Repo: vendorRepo,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Repo:      listingRepo,
		AccountUC: account,
		FileUC:    file,
	})
	offer := offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
		Repo:        offerRepo,
		ListingRepo: listingRepo,
		VendorUC:    vendor,
		Query:       q,
	})
	paymentUC := payment_usecase.New(&payment_usecase.PaymentUseCaseCfg{
		OfferRepo: offerRepo,
		VendorUC:  vendor,
		Gateway:   gateway,
	})

	authMiddleware := auth_middleware.New(auth, account)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, account)
	account_delivery.New(e, authMiddleware, account)
	vendor_delivery.New(e, authMiddleware, vendor)
	listing_delivery.New(e, authMiddleware, listing)
	offer_delivery.New(e, authMiddleware, offer)
	payment_delivery.New(e, authMiddleware, paymentUC)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
