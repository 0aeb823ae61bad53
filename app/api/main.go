package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/database/mongoclient"
	"github.com/footcaster/goapi/base/database/redisclient"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/base/metrics"
	bValidator "github.com/footcaster/goapi/base/validator"
	"github.com/footcaster/goapi/domain"
	mmiddleware "github.com/footcaster/goapi/middleware"
	"github.com/footcaster/goapi/service/chain"
	"github.com/footcaster/goapi/service/pricefeed"
	"github.com/footcaster/goapi/service/query"
	"github.com/footcaster/goapi/service/redis"
	"github.com/footcaster/goapi/service/verifier"
	account_repository "github.com/footcaster/goapi/stores/account/repository"
	account_usecase "github.com/footcaster/goapi/stores/account/usecase"
	auction_delivery "github.com/footcaster/goapi/stores/auction/delivery/http"
	auction_repository "github.com/footcaster/goapi/stores/auction/repository"
	auction_usecase "github.com/footcaster/goapi/stores/auction/usecase"
	auth_delivery "github.com/footcaster/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/footcaster/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/footcaster/goapi/stores/auth/usecase"
	hc_delivery "github.com/footcaster/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/footcaster/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/footcaster/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/footcaster/goapi/stores/listing/delivery/http"
	listing_repository "github.com/footcaster/goapi/stores/listing/repository"
	listing_usecase "github.com/footcaster/goapi/stores/listing/usecase"
	quote_delivery "github.com/footcaster/goapi/stores/quote/delivery/http"
	quote_usecase "github.com/footcaster/goapi/stores/quote/usecase"
	txledger_repository "github.com/footcaster/goapi/stores/txledger/repository"
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

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	paymentVerifier := verifier.New(&verifier.Cfg{
		ChainClient:   chainService,
		ChainId:       viper.GetInt32("paymentToken.chainId"),
		TokenAddress:  domain.Address(viper.GetString("paymentToken.address")).ToLower(),
		Confirmations: viper.GetUint64("paymentToken.confirmations"),
	})

	pricefeedClient := pricefeed.NewClient(&pricefeed.ClientCfg{
		HttpClient:     http.Client{},
		Timeout:        viper.GetDuration("pricefeed.timeout"),
		CacheTtl:       viper.GetDuration("pricefeed.cacheTtl"),
		CustomUrl:      viper.GetString("pricefeed.customUrl"),
		DexscreenerUrl: viper.GetString("pricefeed.dexscreenerUrl"),
		ClankerUrl:     viper.GetString("pricefeed.clankerUrl"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	txUsageRepo := txledger_repository.NewTxUsageRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q, txUsageRepo)
	listingRepo := listing_repository.NewListingRepo(q, txUsageRepo)
	accountRepo := account_repository.New(q, redisCache)

	atomicApply := viper.GetBool("settlement.atomicApply")

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(accountRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), account)
	auction := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo:        auctionRepo,
		AccountRepo:        accountRepo,
		TxLedger:           txUsageRepo,
		Verifier:           paymentVerifier,
		AtomicApply:        atomicApply,
		MinIncrementBps:    viper.GetInt64("auction.minIncrementBps"),
		AntiSnipeWindow:    viper.GetDuration("auction.antiSnipeWindow"),
		AntiSnipeExtension: viper.GetDuration("auction.antiSnipeExtension"),
		DefaultDuration:    viper.GetDuration("auction.defaultDuration"),
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		AccountRepo: accountRepo,
		TxLedger:    txUsageRepo,
		Verifier:    paymentVerifier,
		AtomicApply: atomicApply,
	})
	quote := quote_usecase.New(&quote_usecase.QuoteUseCaseCfg{
		Pricefeed: pricefeedClient,
	})

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	auction_delivery.New(e, auction, authMiddleware)
	listing_delivery.New(e, listing, authMiddleware)
	quote_delivery.New(e, quote)

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
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
