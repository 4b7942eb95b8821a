package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

type pantryRepo struct {
	food.FoodRepository
	items []*entities.FoodItem
}

func (p *pantryRepo) GetFoodItemsByUser(_ context.Context, userID string) ([]*entities.FoodItem, error) {
	var out []*entities.FoodItem
	for _, it := range p.items {
		if it.UserID.String() == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type users struct {
	user.UserRepository
	all []*entities.User
}

func (u *users) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, e := range u.all {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (u *users) GetDigestRecipients(_ context.Context) ([]*entities.User, error) {
	var out []*entities.User
	for _, e := range u.all {
		if e.DigestEnabled {
			out = append(out, e)
		}
	}
	return out, nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (r *recordingMailer) Send(to, subject, body string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMail{to, subject, body})
	return nil
}

func day(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

func newTestService() (*notifyService, *pantryRepo, *users, *recordingMailer) {
	pantry := &pantryRepo{}
	us := &users{}
	mailer := &recordingMailer{}
	svc := NewNotifyService(pantry, us, mailer).(*notifyService)
	svc.now = func() time.Time { return testNow }
	svc.appURL = "https://pantry.test"
	return svc, pantry, us, mailer
}

func TestSendExpiryDigest(t *testing.T) {
	ctx := context.Background()
	svc, pantry, us, mailer := newTestService()

	ana := &entities.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	us.all = append(us.all, ana)
	pantry.items = []*entities.FoodItem{
		{ID: uuid.New(), UserID: ana.ID, Name: "Yogurt", Quantity: decimal.NewFromInt(2), Unit: "pcs", ExpiryDate: day(6, 8)},
		{ID: uuid.New(), UserID: ana.ID, Name: "Milk", Quantity: decimal.NewFromInt(1), Unit: "l", ExpiryDate: day(6, 11)},
		{ID: uuid.New(), UserID: ana.ID, Name: "Spinach", Quantity: decimal.NewFromInt(1), Unit: "bag", ExpiryDate: day(6, 10)},
		{ID: uuid.New(), UserID: ana.ID, Name: "Rice", Quantity: decimal.NewFromInt(1), Unit: "kg", ExpiryDate: day(12, 1)},
	}

	res, err := svc.SendExpiryDigest(ctx, ana.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.DigestResponse{Sent: true, Expired: 1, ExpiringSoon: 2}, res)

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "ana@example.com", mail.to)
	assert.Equal(t, digestSubject, mail.subject)
	assert.Contains(t, mail.body, "Hi Ana")
	assert.Contains(t, mail.body, "Yogurt (2 pcs), expired 2024-06-08")
	assert.Contains(t, mail.body, "Milk (1 l), tomorrow")
	assert.Contains(t, mail.body, "Spinach (1 bag), today")
	assert.NotContains(t, mail.body, "Rice")
	assert.Contains(t, mail.body, "https://pantry.test")
}

func TestSendExpiryDigestNothingDue(t *testing.T) {
	ctx := context.Background()
	svc, pantry, us, mailer := newTestService()

	ana := &entities.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	us.all = append(us.all, ana)
	pantry.items = []*entities.FoodItem{
		{ID: uuid.New(), UserID: ana.ID, Name: "Rice", Quantity: decimal.NewFromInt(1), ExpiryDate: day(12, 1)},
	}

	res, err := svc.SendExpiryDigest(ctx, ana.ID.String())
	require.NoError(t, err)
	assert.False(t, res.Sent)
	assert.Empty(t, mailer.sent)

	_, err = svc.SendExpiryDigest(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendAllDigests(t *testing.T) {
	ctx := context.Background()
	svc, pantry, us, mailer := newTestService()

	ana := &entities.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", DigestEnabled: true}
	ben := &entities.User{ID: uuid.New(), Name: "Ben", Email: "ben@example.com", DigestEnabled: true}
	cy := &entities.User{ID: uuid.New(), Name: "Cy", Email: "cy@example.com"}
	us.all = []*entities.User{ana, ben, cy}
	pantry.items = []*entities.FoodItem{
		{ID: uuid.New(), UserID: ana.ID, Name: "Milk", Quantity: decimal.NewFromInt(1), ExpiryDate: day(6, 11)},
		{ID: uuid.New(), UserID: ben.ID, Name: "Rice", Quantity: decimal.NewFromInt(1), ExpiryDate: day(12, 1)},
		{ID: uuid.New(), UserID: cy.ID, Name: "Fish", Quantity: decimal.NewFromInt(1), ExpiryDate: day(6, 1)},
	}

	sent, err := svc.SendAllDigests(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].to)

	mailer.err = errors.New("smtp down")
	sent, err = svc.SendAllDigests(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}
