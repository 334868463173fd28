package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/kaapihouse/kaapi/config"
	"github.com/kaapihouse/kaapi/infra/events"
	"github.com/kaapihouse/kaapi/infra/gateways"
	"github.com/kaapihouse/kaapi/infra/loki"
	"github.com/kaapihouse/kaapi/infra/metrics"
	"github.com/kaapihouse/kaapi/infra/repositories"
	"github.com/kaapihouse/kaapi/infra/requestid"
	"github.com/kaapihouse/kaapi/infra/tracing"
	protocols "github.com/kaapihouse/kaapi/protocols"
)

// CreateBookingRequest accepts both field spellings the clients send and
// normalizes them into the canonical input at the boundary.
type CreateBookingRequest struct {
	CustomerName      string   `json:"customer_name"`
	CustomerNameCamel string   `json:"customerName"`
	DrinkName         string   `json:"drink_name"`
	DrinkNameCamel    string   `json:"drinkName"`
	Price             *float64 `json:"price"`
}

func (r *CreateBookingRequest) Normalize() (protocols.CreateBookingInput, bool) {
	customerName := r.CustomerName
	if customerName == "" {
		customerName = r.CustomerNameCamel
	}
	drinkName := r.DrinkName
	if drinkName == "" {
		drinkName = r.DrinkNameCamel
	}
	if customerName == "" || drinkName == "" || r.Price == nil {
		return protocols.CreateBookingInput{}, false
	}
	return protocols.CreateBookingInput{
		CustomerName: strings.TrimSpace(customerName),
		DrinkName:    drinkName,
		Price:        *r.Price,
	}, true
}

type bookingStore interface {
	List(ctx context.Context) ([]protocols.Booking, error)
	Insert(ctx context.Context, input protocols.CreateBookingInput) (*protocols.Booking, error)
}

func newRouter(store bookingStore, idempotency protocols.IdempotencyGateway, publisher protocols.EventPublisher, redisAddr string) *gin.Engine {
	r := gin.Default()
	r.Use(requestid.Middleware)
	r.Use(metrics.Middleware)
	r.Use(tracing.Middleware("booking-api"))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		redisCheck := "n/a"
		if redisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				status = "degraded"
				redisCheck = "down"
			} else {
				redisCheck = "up"
			}
			_ = rdb.Close()
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "checks": gin.H{"redis": redisCheck}})
	})

	r.GET("/api/bookings", func(c *gin.Context) {
		bookings, err := store.List(c.Request.Context())
		if err != nil {
			log.Printf("[%s] fetch bookings: %v", requestid.FromContext(c.Request.Context()), err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
	})

	r.POST("/api/bookings", func(c *gin.Context) {
		var request CreateBookingRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing booking details"})
			return
		}
		input, ok := request.Normalize()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing booking details"})
			return
		}

		idempotencyKey := c.GetHeader("Idempotency-Key")
		if idempotencyKey != "" {
			result, err := idempotency.ReserveIdempotencyKey(c.Request.Context(), idempotencyKey)
			if errors.Is(err, protocols.ErrIdempotencyKeyInFlight) {
				c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
				return
			}
			if err != nil {
				log.Printf("[%s] reserve idempotency key: %v", requestid.FromContext(c.Request.Context()), err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating booking"})
				return
			}
			if result != nil && result.Booking != nil {
				// Replay of an already-created booking.
				c.JSON(http.StatusCreated, result.Booking)
				return
			}
		}

		booking, err := store.Insert(c.Request.Context(), input)
		if err != nil {
			log.Printf("[%s] create booking: %v", requestid.FromContext(c.Request.Context()), err)
			if idempotencyKey != "" {
				_ = idempotency.MarkFailure(c.Request.Context(), idempotencyKey)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating booking"})
			return
		}
		if idempotencyKey != "" {
			_ = idempotency.MarkSuccess(c.Request.Context(), idempotencyKey, booking)
		}
		metrics.BookingsCreated.Inc()
		if publisher != nil {
			if err := publisher.BookingCreated(c.Request.Context(), booking); err != nil {
				log.Printf("publish booking created: %v", err)
			}
		}
		c.JSON(http.StatusCreated, booking)
	})

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if w := loki.NewWriter(cfg.Server.LokiURL, "booking-api"); w != nil {
		defer w.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, w))
	}

	if shutdown := tracing.Init("booking-api"); shutdown != nil {
		defer shutdown()
	}

	ctx := context.Background()
	if err := repositories.EnsureDatabase(ctx, cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Database); err != nil {
		log.Fatalf("ensure database: %v", err)
	}

	db, err := sql.Open("postgres", repositories.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Database))
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	store := repositories.NewBookingRepositoryPostgres(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	fmt.Printf("Connected to PostgreSQL '%s'\n", cfg.DB.Database)

	var idempotency protocols.IdempotencyGateway
	if cfg.Server.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Server.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			fmt.Printf("Redis ping failed (%s), using in-memory idempotency: %v\n", cfg.Server.RedisAddr, err)
			idempotency = gateways.NewIdempotencyGatewayMemory()
		} else {
			idempotency = gateways.NewIdempotencyGatewayRedis(rdb)
			fmt.Println("Booking idempotency: Redis (TTL 24h)")
		}
	} else {
		idempotency = gateways.NewIdempotencyGatewayMemory()
		fmt.Println("Booking idempotency: in-memory (set REDIS_ADDR for Redis)")
	}

	var publisher protocols.EventPublisher
	if cfg.Server.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.Server.KafkaBroker, cfg.Server.KafkaTopic)
		defer kp.Close()
		publisher = kp
		fmt.Printf("Publishing booking events to %s on %s\n", cfg.Server.KafkaTopic, cfg.Server.KafkaBroker)
	}

	r := newRouter(store, idempotency, publisher, cfg.Server.RedisAddr)
	fmt.Printf("Booking API running on port %d\n", cfg.Server.Port)
	r.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
