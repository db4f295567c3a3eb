package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	sessionpkg "github.com/rahmasleam/NexusMenaV2/internal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrItemNotFound       = errors.New("auth: saved item not found")
)

// Service manages portal accounts in process memory. The first account
// to register becomes the admin.
type Service struct {
	mu       sync.RWMutex
	byID     map[string]*models.User
	byEmail  map[string]*models.User
	chats    map[string][]models.SavedChat
	analyses map[string][]models.SavedAnalysis
	sessions *sessionpkg.Registry
	logger   *zap.Logger
}

func NewService(sessions *sessionpkg.Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		byID:     make(map[string]*models.User),
		byEmail:  make(map[string]*models.User),
		chats:    make(map[string][]models.SavedChat),
		analyses: make(map[string][]models.SavedAnalysis),
		sessions: sessions,
		logger:   logger.Named("auth"),
	}
}

// Register creates an account and signs the user in.
func (s *Service) Register(email, password, name, ip, ua string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, "", ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		return nil, "", ErrEmailTaken
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		IsAdmin:      len(s.byID) == 0,
		CreatedAt:    time.Now(),
		Favorites:    make(map[models.Collection][]string),
	}
	s.byID[user.ID] = user
	s.byEmail[email] = user
	s.mu.Unlock()

	token, _, err := s.sessions.Issue(user.ID, ip, ua, 0)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", zap.String("uid", user.ID))
	return snapshot(user), token, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(email, password, ip, ua string) (*models.User, string, error) {
	s.mu.Lock()
	user, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		s.mu.Unlock()
		// Burn a comparison so missing and wrong behave alike.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000"), []byte(password))
		return nil, "", ErrInvalidCredentials
	}
	hash := user.PasswordHash
	s.mu.Unlock()

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	s.mu.Lock()
	user.LastLoginAt = &now
	s.mu.Unlock()

	token, _, err := s.sessions.Issue(user.ID, ip, ua, 0)
	if err != nil {
		return nil, "", err
	}
	return snapshot(user), token, nil
}

// Logout revokes the presented session.
func (s *Service) Logout(userID, sessionID string) {
	_ = s.sessions.Revoke(userID, sessionID)
}

// Get returns a user by id.
func (s *Service) Get(userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return snapshot(user), nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *Service) IsAdmin(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	return ok && user.IsAdmin
}

// RequestPasswordReset issues a one-time reset token. Without an
// outbound mailer the token is only logged server-side.
func (s *Service) RequestPasswordReset(email string) {
	s.mu.RLock()
	_, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return
	}
	token := uuid.New().String()
	s.logger.Info("password reset requested", zap.String("resetToken", token))
}

// ToggleFavorite saves or removes an item from the user's favorites,
// returning true when the item is now saved.
func (s *Service) ToggleFavorite(userID string, collection models.Collection, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	if user.Favorites == nil {
		user.Favorites = make(map[models.Collection][]string)
	}

	list := user.Favorites[collection]
	for i, id := range list {
		if id == itemID {
			user.Favorites[collection] = append(list[:i], list[i+1:]...)
			return false, nil
		}
	}
	user.Favorites[collection] = append(list, itemID)
	return true, nil
}

// Favorites returns the user's saved item ids per collection.
func (s *Service) Favorites(userID string) (map[models.Collection][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := make(map[models.Collection][]string, len(user.Favorites))
	for c, ids := range user.Favorites {
		out[c] = append([]string(nil), ids...)
	}
	return out, nil
}

// SaveChat pins an assistant transcript to the account, newest first.
// An empty title is derived from the first message.
func (s *Service) SaveChat(userID, title string, messages []models.ChatMessage) (models.SavedChat, error) {
	if len(messages) == 0 {
		return models.SavedChat{}, errors.New("auth: nothing to save")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = deriveChatTitle(messages[0].Content)
	}
	chat := models.SavedChat{
		ID:       uuid.New().String(),
		Title:    title,
		Messages: append([]models.ChatMessage(nil), messages...),
		SavedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[userID]; !ok {
		return models.SavedChat{}, ErrUserNotFound
	}
	s.chats[userID] = append([]models.SavedChat{chat}, s.chats[userID]...)
	return chat, nil
}

// SavedChats lists the account's pinned transcripts, newest first.
func (s *Service) SavedChats(userID string) ([]models.SavedChat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byID[userID]; !ok {
		return nil, ErrUserNotFound
	}
	return append([]models.SavedChat(nil), s.chats[userID]...), nil
}

// DeleteChat removes a pinned transcript.
func (s *Service) DeleteChat(userID, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.chats[userID]
	for i, chat := range list {
		if chat.ID == chatID {
			s.chats[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// SaveAnalysis pins a podcast report to the account, newest first.
func (s *Service) SaveAnalysis(userID, url string, analysis models.PodcastAnalysis) (models.SavedAnalysis, error) {
	saved := models.SavedAnalysis{
		ID:       uuid.New().String(),
		URL:      strings.TrimSpace(url),
		Analysis: analysis,
		SavedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[userID]; !ok {
		return models.SavedAnalysis{}, ErrUserNotFound
	}
	s.analyses[userID] = append([]models.SavedAnalysis{saved}, s.analyses[userID]...)
	return saved, nil
}

// SavedAnalyses lists the account's pinned reports, newest first.
func (s *Service) SavedAnalyses(userID string) ([]models.SavedAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byID[userID]; !ok {
		return nil, ErrUserNotFound
	}
	return append([]models.SavedAnalysis(nil), s.analyses[userID]...), nil
}

// DeleteAnalysis removes a pinned report.
func (s *Service) DeleteAnalysis(userID, analysisID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.analyses[userID]
	for i, saved := range list {
		if saved.ID == analysisID {
			s.analyses[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func deriveChatTitle(firstMessage string) string {
	runes := []rune(strings.TrimSpace(firstMessage))
	if len(runes) > 20 {
		return "Chat " + time.Now().Format("2006-01-02") + " - " + string(runes[:20]) + "..."
	}
	return "Chat " + time.Now().Format("2006-01-02") + " - " + string(runes)
}

// Sessions lists the user's active sessions.
func (s *Service) Sessions(userID string) []*sessionpkg.Session {
	return s.sessions.ListActive(userID)
}

// RevokeSession signs out one device.
func (s *Service) RevokeSession(userID, sessionID string) error {
	return s.sessions.Revoke(userID, sessionID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func snapshot(u *models.User) *models.User {
	copied := *u
	copied.PasswordHash = ""
	return &copied
}
