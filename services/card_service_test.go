package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/types/session"
)

func TestGenerateIDCard(t *testing.T) {
	bank := coinbank.NewMemoryRepository()
	if err := bank.Save(context.Background(), &coinbank.Aggregate{
		TeacherID: "teacher-1",
		Members: []*accrual.MemberTotals{
			{UserID: "member-1", UserName: "asha", AllTime: accrual.Totals{Coins: 1200, Streak: 30}},
		},
	}); err != nil {
		t.Fatalf("seed aggregate: %v", err)
	}

	svc := NewCardService(bank)
	memberSince := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	card, err := svc.GenerateIDCard(context.Background(), memberSession(), memberSince)
	if err != nil {
		t.Fatalf("GenerateIDCard: %v", err)
	}

	if card.MemberID != "member-1" || card.Name != "asha" {
		t.Errorf("identity = %s / %s", card.MemberID, card.Name)
	}
	if !card.MemberSince.Equal(memberSince) {
		t.Errorf("member since = %v", card.MemberSince)
	}
	if card.StreakLevel != accrual.LevelFromStreak(30) {
		t.Errorf("streak level = %+v", card.StreakLevel)
	}
	if card.CoinLevel != accrual.LevelFromCoins(1200) {
		t.Errorf("coin level = %+v", card.CoinLevel)
	}

	// The QR payload must decode back to a PNG.
	png, err := base64.StdEncoding.DecodeString(card.QRCodeBase64)
	if err != nil {
		t.Fatalf("QR payload is not valid base64: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("QR payload is not a PNG")
	}
}

func TestGenerateIDCardValidation(t *testing.T) {
	svc := NewCardService(coinbank.NewMemoryRepository())

	_, err := svc.GenerateIDCard(context.Background(), session.Session{}, time.Now())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateIDCardUnknownMemberLockedLevel(t *testing.T) {
	svc := NewCardService(coinbank.NewMemoryRepository())

	card, err := svc.GenerateIDCard(context.Background(), memberSession(), time.Now())
	if err != nil {
		t.Fatalf("GenerateIDCard: %v", err)
	}
	want := accrual.LevelFromStreak(0)
	if card.StreakLevel != want {
		t.Errorf("streak level = %+v, want %+v", card.StreakLevel, want)
	}
}
