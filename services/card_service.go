package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/types/card"
	"kriyaConnectAPI/internal/types/session"
)

type CardService struct {
	coinbank coinbank.Repository
}

func NewCardService(bank coinbank.Repository) *CardService {
	return &CardService{coinbank: bank}
}

// GenerateIDCard composes the printable membership card: identity, level
// standing and a QR code pointing at the member verification deep link. The
// client renders this payload into the printable PDF.
func (s *CardService) GenerateIDCard(ctx context.Context, sess session.Session, memberSince time.Time) (*card.IDCard, error) {
	if sess.UserID == "" || sess.TeacherID == "" {
		return nil, fmt.Errorf("%w: user and teacher ids are required", ErrInvalidInput)
	}

	agg, err := s.coinbank.Get(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin aggregate: %w", err)
	}

	var totals accrual.Totals
	if m := agg.Member(sess.UserID); m != nil {
		totals = m.AllTime
	}

	qrContent := fmt.Sprintf("kriyaconnect://member/verify/%s", sess.UserID)
	pngBytes, err := qrcode.Encode(qrContent, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}

	return &card.IDCard{
		MemberID:     sess.UserID,
		Name:         sess.UserName,
		Role:         sess.UserRole,
		TeacherID:    sess.TeacherID,
		MemberSince:  memberSince,
		StreakLevel:  accrual.LevelFromStreak(totals.Streak),
		CoinLevel:    accrual.LevelFromCoins(totals.Coins),
		QRCodeBase64: base64.StdEncoding.EncodeToString(pngBytes),
		IssuedAt:     time.Now(),
	}, nil
}
