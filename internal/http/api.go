package http

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"listinghub/internal/auth"
	"listinghub/internal/domain"
	"listinghub/internal/service"
	"listinghub/internal/storage"
)

const photoURLTTL = time.Hour

// Handler wires HTTP routes to domain services.
type Handler struct {
	agents        service.AgentService
	listings      service.ListingService
	templates     service.TemplateService
	notifications service.NotificationService
	codec         *auth.Codec
	storage       storage.Service
	bucket        string
	keyPrefix     string
	logger        *logrus.Logger
}

func NewHandler(
	agents service.AgentService,
	listings service.ListingService,
	templates service.TemplateService,
	notifications service.NotificationService,
	codec *auth.Codec,
	store storage.Service,
	bucket, keyPrefix string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		agents:        agents,
		listings:      listings,
		templates:     templates,
		notifications: notifications,
		codec:         codec,
		storage:       store,
		bucket:        bucket,
		keyPrefix:     keyPrefix,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		public := api.Group("", auth.OptionalAuth(h.codec))
		{
			public.GET("/listings", h.browseListings)
			public.GET("/listings/:slug", h.getListing)
		}

		private := api.Group("", auth.RequireAuth(h.codec))
		{
			private.GET("/profile", h.getProfile)
			private.PUT("/profile", h.updateProfile)
			private.GET("/profile/listings", h.myListings)

			private.POST("/listings", h.createListing)
			private.PUT("/listings/:id", h.updateListing)
			private.PATCH("/listings/:id/status", h.updateListingStatus)
			private.DELETE("/listings/:id", h.deleteListing)
			private.POST("/listings/:id/photos", h.uploadPhotos)

			private.GET("/templates", h.listTemplates)
			private.POST("/templates", h.createTemplate)
			private.PUT("/templates/:id", h.updateTemplate)
			private.DELETE("/templates/:id", h.deleteTemplate)

			private.GET("/notifications", h.getNotifications)
			private.PUT("/notifications", h.updateNotifications)

			private.GET("/storage/objects", h.listObjects)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.agents.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if err == service.ErrAgentAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusCreated, agent)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.agents.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusOK, agent)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, agent *domain.Agent) {
	token, err := h.codec.Issue(auth.ClaimSet{
		UserID:   agent.ID,
		Username: agent.Username,
		Email:    agent.Email,
	})
	if err != nil {
		h.logger.Errorf("issue token for agent %d: %v", agent.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(status, gin.H{
		"token": token,
		"agent": agentToResponse(agent),
	})
}

func (h *Handler) browseListings(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("mine") == "1" {
		if identity, ok := auth.IdentityFrom(c); ok {
			listings, err := h.listings.ListByAgent(ctx, identity.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, h.listingsToResponse(ctx, listings, false))
			return
		}
	}

	listings, err := h.listings.ListPublic(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.listingsToResponse(ctx, listings, false))
}

func (h *Handler) getListing(c *gin.Context) {
	ctx := c.Request.Context()

	listing, err := h.listings.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	identity, authenticated := auth.IdentityFrom(c)
	isOwner := authenticated && identity.ID == listing.AgentID

	// non-active listings are visible only to their owner
	if listing.Status != domain.ListingStatusActive && !isOwner {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}

	resp := gin.H{"listing": h.listingToResponse(ctx, *listing, true)}
	if authenticated {
		if agent, err := h.agents.GetByID(ctx, listing.AgentID); err == nil {
			resp["agent"] = agentToResponse(agent)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	agent, err := h.agents.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, agentToResponse(agent))
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Agency   string `json:"agency"`
	Bio      string `json:"bio"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.agents.UpdateProfile(c.Request.Context(), identity.ID, req.FullName, req.Phone, req.Agency, req.Bio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, agentToResponse(agent))
}

func (h *Handler) myListings(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)
	ctx := c.Request.Context()

	listings, err := h.listings.ListByAgent(ctx, identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.listingsToResponse(ctx, listings, false))
}

type listingRequest struct {
	Title       string `json:"title" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	PriceCents  int64  `json:"price_cents"`
	Beds        int    `json:"beds"`
	Baths       int    `json:"baths"`
	SquareFeet  int    `json:"square_feet"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (req listingRequest) toDomain() domain.Listing {
	return domain.Listing{
		Title:       req.Title,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		PriceCents:  req.PriceCents,
		Beds:        req.Beds,
		Baths:       req.Baths,
		SquareFeet:  req.SquareFeet,
		Description: req.Description,
		Status:      domain.ListingStatus(req.Status),
	}
}

func (h *Handler) createListing(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), identity.ID, req.toDomain())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.listingToResponse(c.Request.Context(), *listing, false))
}

func (h *Handler) updateListing(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := req.toDomain()
	updated.ID = id

	listing, err := h.listings.Update(c.Request.Context(), identity.ID, updated)
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.listingToResponse(c.Request.Context(), *listing, false))
}

type listingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateListingStatus(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req listingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.listings.UpdateStatus(c.Request.Context(), identity.ID, id, domain.ListingStatus(req.Status)); err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

func (h *Handler) deleteListing(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	deleteRemote, err := strconv.ParseBool(c.DefaultQuery("delete_remote", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag delete_remote"})
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	// ownership first: remote photos must never be touched for someone
	// else's listing
	if listing.AgentID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotListingOwner.Error()})
		return
	}
	if deleteRemote && (h.storage == nil || h.bucket == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storage service not configured"})
		return
	}

	if err := h.listings.Delete(c.Request.Context(), identity.ID, id); err != nil {
		h.respondListingError(c, err)
		return
	}

	var warnings []string
	if deleteRemote {
		remoteCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		if err := h.storage.DeletePrefix(remoteCtx, h.bucket, h.photoPrefix(listing.Slug)); err != nil {
			warnings = append(warnings, fmt.Sprintf("delete remote photos: %v", err))
		}
	}

	resp := gin.H{"deleted": id}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadPhotos(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if listing.AgentID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotListingOwner.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no photos provided"})
		return
	}

	photos := make([]domain.ListingPhoto, 0, len(files))
	for i, file := range files {
		key, err := h.uploadPhoto(c.Request.Context(), listing.Slug, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		photos = append(photos, domain.ListingPhoto{
			ListingID: id,
			ObjectKey: key,
			Position:  i,
		})
	}

	if err := h.listings.ReplacePhotos(c.Request.Context(), identity.ID, id, photos); err != nil {
		h.respondListingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uploaded": len(photos)})
}

func (h *Handler) uploadPhoto(ctx context.Context, slug string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s%s", h.photoPrefix(slug), uuid.NewString(), ext)

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	contentType := file.Header.Get("Content-Type")
	if _, err := h.storage.UploadObject(uploadCtx, h.bucket, key, src, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (h *Handler) photoPrefix(slug string) string {
	prefix := strings.Trim(h.keyPrefix, "/")
	if prefix == "" {
		return slug
	}
	return prefix + "/" + slug
}

type templateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) listTemplates(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	templates, err := h.templates.ListByAgent(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]TemplateResponse, len(templates))
	for i := range templates {
		resp[i] = templateToResponse(templates[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTemplate(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := h.templates.Create(c.Request.Context(), identity.ID, req.Name, req.Subject, req.Body)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, templateToResponse(*tmpl))
}

func (h *Handler) updateTemplate(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := h.templates.Update(c.Request.Context(), identity.ID, id, req.Name, req.Subject, req.Body)
	if err != nil {
		h.respondTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, templateToResponse(*tmpl))
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.templates.Delete(c.Request.Context(), identity.ID, id); err != nil {
		h.respondTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type notificationRequest struct {
	EmailNewLead        bool `json:"email_new_lead"`
	EmailWeeklyDigest   bool `json:"email_weekly_digest"`
	EmailListingUpdates bool `json:"email_listing_updates"`
	SMSEnabled          bool `json:"sms_enabled"`
}

func (h *Handler) getNotifications(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	prefs, err := h.notifications.Get(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefsToResponse(prefs))
}

func (h *Handler) updateNotifications(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.notifications.Update(c.Request.Context(), domain.NotificationPrefs{
		AgentID:             identity.ID,
		EmailNewLead:        req.EmailNewLead,
		EmailWeeklyDigest:   req.EmailWeeklyDigest,
		EmailListingUpdates: req.EmailListingUpdates,
		SMSEnabled:          req.SMSEnabled,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefsToResponse(prefs))
}

func (h *Handler) listObjects(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	prefix := c.Query("prefix")
	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) respondListingError(c *gin.Context, err error) {
	switch {
	case err == service.ErrNotListingOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case strings.Contains(strings.ToLower(err.Error()), "not found"):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) respondTemplateError(c *gin.Context, err error) {
	switch {
	case err == service.ErrNotTemplateOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case strings.Contains(strings.ToLower(err.Error()), "not found"):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type AgentResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Agency        string `json:"agency"`
	Bio           string `json:"bio"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
}

type ListingResponse struct {
	ID          int64           `json:"id"`
	AgentID     int64           `json:"agent_id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Zip         string          `json:"zip"`
	PriceCents  int64           `json:"price_cents"`
	Beds        int             `json:"beds"`
	Baths       int             `json:"baths"`
	SquareFeet  int             `json:"square_feet"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Photos      []PhotoResponse `json:"photos"`
}

type PhotoResponse struct {
	ID        int64  `json:"id"`
	ObjectKey string `json:"object_key"`
	Caption   string `json:"caption"`
	Position  int    `json:"position"`
	URL       string `json:"url,omitempty"`
}

type TemplateResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type NotificationResponse struct {
	EmailNewLead        bool `json:"email_new_lead"`
	EmailWeeklyDigest   bool `json:"email_weekly_digest"`
	EmailListingUpdates bool `json:"email_listing_updates"`
	SMSEnabled          bool `json:"sms_enabled"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func agentToResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:            agent.ID,
		Username:      agent.Username,
		Email:         agent.Email,
		FullName:      agent.FullName,
		Phone:         agent.Phone,
		Agency:        agent.Agency,
		Bio:           agent.Bio,
		EmailVerified: agent.EmailVerified,
		CreatedAt:     agent.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listingsToResponse(ctx context.Context, listings []domain.Listing, withURLs bool) []ListingResponse {
	resp := make([]ListingResponse, len(listings))
	for i := range listings {
		resp[i] = h.listingToResponse(ctx, listings[i], withURLs)
	}
	return resp
}

func (h *Handler) listingToResponse(ctx context.Context, listing domain.Listing, withURLs bool) ListingResponse {
	resp := ListingResponse{
		ID:          listing.ID,
		AgentID:     listing.AgentID,
		Slug:        listing.Slug,
		Title:       listing.Title,
		Address:     listing.Address,
		City:        listing.City,
		State:       listing.State,
		Zip:         listing.Zip,
		PriceCents:  listing.PriceCents,
		Beds:        listing.Beds,
		Baths:       listing.Baths,
		SquareFeet:  listing.SquareFeet,
		Description: listing.Description,
		Status:      string(listing.Status),
		CreatedAt:   listing.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   listing.UpdatedAt.Format(time.RFC3339),
		Photos:      make([]PhotoResponse, len(listing.Photos)),
	}

	for i := range listing.Photos {
		photo := PhotoResponse{
			ID:        listing.Photos[i].ID,
			ObjectKey: listing.Photos[i].ObjectKey,
			Caption:   listing.Photos[i].Caption,
			Position:  listing.Photos[i].Position,
		}
		if withURLs && h.storage != nil && h.bucket != "" {
			if url, err := h.storage.GetObjectURL(ctx, h.bucket, photo.ObjectKey, photoURLTTL); err == nil {
				photo.URL = url
			}
		}
		resp.Photos[i] = photo
	}

	return resp
}

func templateToResponse(tmpl domain.EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        tmpl.ID,
		Name:      tmpl.Name,
		Subject:   tmpl.Subject,
		Body:      tmpl.Body,
		CreatedAt: tmpl.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tmpl.UpdatedAt.Format(time.RFC3339),
	}
}

func prefsToResponse(prefs *domain.NotificationPrefs) NotificationResponse {
	return NotificationResponse{
		EmailNewLead:        prefs.EmailNewLead,
		EmailWeeklyDigest:   prefs.EmailWeeklyDigest,
		EmailListingUpdates: prefs.EmailListingUpdates,
		SMSEnabled:          prefs.SMSEnabled,
	}
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
