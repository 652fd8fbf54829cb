package http

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"interview-prep/internal/auth"
	"interview-prep/internal/domain"
	"interview-prep/internal/question"
	"interview-prep/internal/service"
	"interview-prep/internal/session"
)

// maxAvatarBytes caps avatar uploads; images are stored in-row.
const maxAvatarBytes = 5 << 20

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	profile   service.ProfileService
	feedback  service.FeedbackService
	questions *question.Service
	sessions  session.Store
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(
	authSvc service.AuthService,
	profileSvc service.ProfileService,
	feedbackSvc service.FeedbackService,
	questions *question.Service,
	sessions session.Store,
	jwtSecret string,
	ttl time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		auth:      authSvc,
		profile:   profileSvc,
		feedback:  feedbackSvc,
		questions: questions,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authed := api.Group("")
		authed.Use(h.authMiddleware())
		{
			authed.GET("/profile", h.getProfile)
			authed.POST("/profile", h.updateProfile)
			authed.POST("/generate-questions", h.generateQuestions)
			authed.POST("/save-interview-feedback", h.saveFeedback)
			authed.GET("/interview-feedback", h.listFeedback)
		}
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case err != nil:
		h.internalError(c, "register", err)
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	case err != nil:
		h.internalError(c, "login", err)
		return
	}

	token, err := auth.GenerateToken(result.User.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.internalError(c, "login token", err)
		return
	}

	c.SetCookie(SessionCookie, result.SessionToken, int(h.tokenTTL.Seconds()), "/", "", false, true)

	resp := gin.H{
		"message": "Login successful",
		"token":   token,
		"user": userSummary{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	}
	if !result.ProfileComplete {
		resp["message"] = "Profile incomplete"
		resp["redirect"] = "/profile"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.internalError(c, "logout", err)
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

type profileResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	College    string `json:"college"`
	Course     string `json:"course"`
	CareerGoal string `json:"career_goal"`
	Image      string `json:"image,omitempty"`
	ImageExt   string `json:"image_ext,omitempty"`
}

func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.profile.Get(c.Request.Context(), userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	case err != nil:
		h.internalError(c, "get profile", err)
		return
	}

	resp := profileResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		College:    user.College,
		Course:     user.Course,
		CareerGoal: user.CareerGoal,
	}
	if len(user.Avatar) > 0 {
		resp.Image = base64.StdEncoding.EncodeToString(user.Avatar)
		resp.ImageExt = user.AvatarExt
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	update := service.ProfileUpdate{
		Name:       formField(c, "name"),
		Email:      formField(c, "email"),
		Phone:      formField(c, "phone"),
		College:    formField(c, "college"),
		Course:     formField(c, "course"),
		CareerGoal: formField(c, "career_goal"),
	}

	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxAvatarBytes {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image too large"})
			return
		}
		src, err := file.Open()
		if err != nil {
			h.internalError(c, "open upload", err)
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			h.internalError(c, "read upload", err)
			return
		}
		update.Image = data
		update.ImageName = file.Filename
	}

	err := h.profile.Update(c.Request.Context(), userID, update)
	switch {
	case errors.Is(err, service.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image type not allowed (png, jpg, jpeg, gif)"})
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case err != nil:
		h.internalError(c, "update profile", err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

type generateQuestionsRequest struct {
	Type         string `json:"type"`
	NumRounds    int    `json:"num_rounds"`
	NumQuestions int    `json:"num_questions"`
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var req generateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	rounds := req.NumRounds
	if rounds == 0 && req.NumQuestions > 0 {
		// legacy clients ask for a total question count
		rounds = (req.NumQuestions + domain.QuestionsPerRound - 1) / domain.QuestionsPerRound
	}

	result, err := h.questions.Generate(c.Request.Context(), req.Type, rounds)
	switch {
	case errors.Is(err, question.ErrUnsupportedCategory):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported interview type"})
		return
	case err != nil:
		h.internalError(c, "generate questions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": result.Rounds,
		"source":    result.Source,
	})
}

type saveFeedbackRequest struct {
	Type                string         `json:"type"`
	Feedback            map[string]any `json:"feedback"`
	QuestionsAndAnswers []domain.QA    `json:"questionsAndAnswers"`
}

func (h *Handler) saveFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req saveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	_, err := h.feedback.Save(c.Request.Context(), &userID, req.Type, req.Feedback, req.QuestionsAndAnswers)
	switch {
	case errors.Is(err, service.ErrEmptyFeedback):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Feedback is required"})
	case err != nil:
		h.internalError(c, "save feedback", err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Feedback saved successfully"})
	}
}

type feedbackResponse struct {
	ID         int64          `json:"id"`
	Category   string         `json:"category"`
	Feedback   map[string]any `json:"feedback"`
	Transcript []domain.QA    `json:"questionsAndAnswers"`
	CreatedAt  string         `json:"created_at"`
}

func (h *Handler) listFeedback(c *gin.Context) {
	category := c.Query("type")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Query parameter type is required"})
		return
	}

	records, err := h.feedback.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.internalError(c, "list feedback", err)
		return
	}

	resp := make([]feedbackResponse, len(records))
	for i, fb := range records {
		resp[i] = feedbackResponse{
			ID:         fb.ID,
			Category:   fb.Category,
			Feedback:   fb.Payload,
			Transcript: fb.Transcript,
			CreatedAt:  fb.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}

// internalError logs the detail and answers with a generic message; failure
// detail never reaches the client.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	if h.logger != nil {
		h.logger.Errorf("%s: %v", op, err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// formField returns a pointer to the value only when the field was present in
// the form, so absent fields stay untouched in partial updates.
func formField(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok {
		return &v
	}
	return nil
}
