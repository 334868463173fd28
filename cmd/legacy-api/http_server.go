package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kaapihouse/kaapi/config"
	"github.com/kaapihouse/kaapi/infra/repositories"
)

type LegacyBookingRequest struct {
	CustomerName string `json:"customerName"`
	CoffeeType   string `json:"coffeeType"`
}

func newRouter(repo *repositories.BookingRepositoryMongo) *gin.Engine {
	r := gin.Default()

	r.GET("/bookings", func(c *gin.Context) {
		bookings, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, bookings)
	})

	r.GET("/bookings/:id", func(c *gin.Context) {
		booking, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repositories.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, booking)
	})

	r.POST("/bookings", func(c *gin.Context) {
		var request LegacyBookingRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		booking, err := repo.Insert(c.Request.Context(), request.CustomerName, request.CoffeeType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, booking)
	})

	r.PUT("/bookings/:id", func(c *gin.Context) {
		var request LegacyBookingRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		booking, err := repo.Update(c.Request.Context(), c.Param("id"), request.CustomerName, request.CoffeeType)
		if errors.Is(err, repositories.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, booking)
	})

	r.DELETE("/bookings/:id", func(c *gin.Context) {
		err := repo.Delete(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repositories.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
	})

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer client.Disconnect(context.Background())
	fmt.Println("MongoDB connected")

	collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	repo := repositories.NewBookingRepositoryMongo(collection)

	r := newRouter(repo)
	fmt.Printf("Legacy booking API running on port %d\n", cfg.Mongo.Port)
	r.Run(fmt.Sprintf(":%d", cfg.Mongo.Port))
}
