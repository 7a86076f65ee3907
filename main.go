package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vitrine/admin"
	"vitrine/analytics"
	"vitrine/apiclient"
	"vitrine/blog"
	"vitrine/cache"
	"vitrine/cart"
	"vitrine/common"
	"vitrine/config"
	"vitrine/database"
	"vitrine/email"
	"vitrine/localstore"
	"vitrine/logger"
	"vitrine/services"
	"vitrine/site"
	"vitrine/storefront"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zl, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zl.Sync()

	db, err := common.ConnectDb(cfg.Storage.LocalDB, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	tracker := analytics.NewAnalyticsModule(common.ConnectAnalyticsDb(cfg.Storage.AnalyticsDB, zl), zl)

	drafts := localstore.NewDraftStore(db, zl)
	var carts cart.Store = localstore.NewCartStore(drafts)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		carts = cart.NewRedisStore(rdb)
		zl.Info("carts stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	api := apiclient.New(cfg.API.BaseURL, apiclient.ContextToken{Fallback: apiclient.StaticToken(cfg.API.Token)}, zl)
	websites := services.NewWebsiteService(api)
	products := services.NewProductService(api)
	blogs := services.NewBlogService(api)
	orders := services.NewOrderService(api)

	pages := cache.New(cfg.Cache.Dir, cfg.Cache.MaxAge, zl)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(common.RequestLogger(zl), common.Recovery(zl))

	sessionStore := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("vitrine-session", sessionStore))

	router.SetFuncMap(common.FuncMap(cfg.Server.Domain))
	router.LoadHTMLGlob("*/views/*.html")

	siteModule := site.NewSiteModule(websites, blogs, cfg.Server.Domain, zl)
	siteModule.RegisterRoutes(router)

	adminModule := admin.NewAdminModule(admin.Deps{
		Websites:       websites,
		Products:       products,
		Blogs:          blogs,
		Orders:         orders,
		Cart:           services.NewCartService(api),
		Drafts:         drafts,
		Images:         localstore.NewImageStore(db, zl),
		Analytics:      tracker,
		Cache:          pages,
		AllowAnonymous: cfg.API.Token != "",
		Log:            zl,
	})
	adminModule.RegisterRoutes(router)

	storefrontModule := storefront.NewStorefrontModule(storefront.Deps{
		Sites:     common.NewSiteResolver(websites, zl),
		Products:  products,
		Blogs:     blogs,
		Coupons:   services.NewCouponService(api),
		Payments:  services.NewPaymentService(api),
		Orders:    orders,
		Search:    services.NewSearchService(api),
		Carts:     carts,
		Analytics: tracker,
		Cache:     pages,
		Mailer:    email.NewEmailService(cfg.SMTP, cfg.Server.Domain, zl),
		Domain:    cfg.Server.Domain,
		Log:       zl,
	})
	storefrontModule.RegisterRoutes(router)

	blogModule := blog.NewBlogModule(storefrontModule, zl)
	blogModule.RegisterRoutes(router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepCache(ctx, pages, cfg.Cache.MaxAge, zl)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           common.SubdomainHandler(cfg.Server.BaseDomain, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

// sweepCache drops expired cached pages every maxAge until ctx ends.
func sweepCache(ctx context.Context, pages *cache.PageCache, maxAge time.Duration, zl *zap.Logger) {
	if maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(maxAge)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pages.Sweep(); err != nil {
				zl.Warn("cache sweep failed", zap.Error(err))
			}
		}
	}
}
