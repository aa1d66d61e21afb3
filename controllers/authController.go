package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"citypulse-be/config"
	"citypulse-be/models"
	authUtils "citypulse-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setAuthCookie(c *gin.Context, token string) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   3600, // 1 hour
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode, // Required for cross-origin cookies in production
	}
	http.SetCookie(c.Writer, cookie)
}

// RegisterCitizen handles citizen signup
func RegisterCitizen(c *gin.Context) {
	var input struct {
		FullName    string `json:"fullName" binding:"required,max=50"`
		Email       string `json:"email" binding:"required,email"`
		Phonenumber string `json:"phonenumber" binding:"required,max=20"`
		Password    string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	citizenCollection := config.GetCollection("citizens")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := citizenCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing citizen:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Citizen with this email already exists"})
		return
	}

	citizen := models.Citizen{
		FullName:    input.FullName,
		Email:       input.Email,
		Phonenumber: input.Phonenumber,
		Password:    input.Password,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := citizen.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := citizenCollection.InsertOne(ctx, citizen)
	if err != nil {
		log.Println("Error inserting citizen:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        result.InsertedID,
		"fullName":  citizen.FullName,
		"email":     citizen.Email,
		"createdAt": citizen.CreatedAt,
	})
}

// LoginCitizen handles citizen signin
func LoginCitizen(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	citizenCollection := config.GetCollection("citizens")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var citizen models.Citizen
	err := citizenCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&citizen)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !citizen.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAndSetToken(citizen.ID.Hex(), "citizen")
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"id":        citizen.ID,
		"fullName":  citizen.FullName,
		"email":     citizen.Email,
		"token":     token,
		"createdAt": citizen.CreatedAt,
	})
}

// GetCitizenProfile retrieves the authenticated citizen's information
func GetCitizenProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	citizenCollection := config.GetCollection("citizens")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var citizen models.Citizen
	err = citizenCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&citizen)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          citizen.ID,
		"fullName":    citizen.FullName,
		"email":       citizen.Email,
		"phonenumber": citizen.Phonenumber,
		"createdAt":   citizen.CreatedAt,
	})
}

// UpdateCitizenProfile updates the authenticated citizen's profile fields
func UpdateCitizenProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		FullName    string `json:"fullName" binding:"required,max=50"`
		Email       string `json:"email" binding:"required,email"`
		Phonenumber string `json:"phonenumber" binding:"required,max=20"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	citizenCollection := config.GetCollection("citizens")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"fullName":    input.FullName,
		"email":       input.Email,
		"phonenumber": input.Phonenumber,
		"updatedAt":   time.Now(),
	}}

	result, err := citizenCollection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// RegisterAdmin handles department administrator signup
func RegisterAdmin(c *gin.Context) {
	var input struct {
		FullName    string `json:"fullName" binding:"required,max=50"`
		Email       string `json:"email" binding:"required,email"`
		Phonenumber string `json:"phonenumber" binding:"required,max=20"`
		Department  string `json:"department" binding:"required,max=50"`
		Password    string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminCollection := config.GetCollection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := adminCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing admin:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin with this email already exists"})
		return
	}

	admin := models.Admin{
		FullName:    input.FullName,
		Email:       input.Email,
		Phonenumber: input.Phonenumber,
		Department:  input.Department,
		Password:    input.Password,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := admin.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := adminCollection.InsertOne(ctx, admin)
	if err != nil {
		log.Println("Error inserting admin:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         result.InsertedID,
		"fullName":   admin.FullName,
		"email":      admin.Email,
		"department": admin.Department,
		"createdAt":  admin.CreatedAt,
	})
}

// LoginAdmin handles department administrator signin
func LoginAdmin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminCollection := config.GetCollection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	err := adminCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !admin.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAndSetToken(admin.ID.Hex(), "admin")
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"id":         admin.ID,
		"fullName":   admin.FullName,
		"email":      admin.Email,
		"department": admin.Department,
		"token":      token,
		"createdAt":  admin.CreatedAt,
	})
}
