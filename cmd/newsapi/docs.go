package main

// @title Spaceflight News API
// @version 1.0
// @description Synchronizes spaceflight news articles, classifies sentiment, tracks favorites and reports monthly publishing activity

// @contact.name API Support

// @license.name MIT

// @host localhost:8500
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description User profile endpoints

// @tag.name Reports
// @tag.description Monthly publishing reports

// @tag.name Favorites
// @tag.description Per-user favorite articles

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Health
// @tag.description Health check endpoints
