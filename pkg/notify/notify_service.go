package notify

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/mailing"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/inventory"
	"Pantry-Tracker/pkg/user"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"gorm.io/gorm"
)

const digestSubject = "Pantry Tracker: items expiring soon"

var digestTemplate = template.Must(template.New("digest").Parse(`<p>Hi {{.Name}},</p>
{{if .Expired}}<p>These items have expired:</p>
<ul>{{range .Expired}}<li>{{.Name}} ({{.Quantity}} {{.Unit}}), expired {{.ExpiryDate}}</li>{{end}}</ul>
{{end}}{{if .ExpiringSoon}}<p>These items expire soon:</p>
<ul>{{range .ExpiringSoon}}<li>{{.Name}} ({{.Quantity}} {{.Unit}}), {{.When}}</li>{{end}}</ul>
{{end}}<p><a href="{{.AppURL}}">Open your pantry</a></p>`))

type (
	NotifyService interface {
		SendExpiryDigest(ctx context.Context, userID string) (domain.DigestResponse, error)
		// SendAllDigests mails every opted-in user and returns how many digests went out.
		SendAllDigests(ctx context.Context) (int, error)
	}

	notifyService struct {
		foodRepository food.FoodRepository
		userRepository user.UserRepository
		mailer         mailing.Mailer
		appURL         string
		now            func() time.Time
	}

	digestLine struct {
		Name       string
		Quantity   string
		Unit       string
		ExpiryDate string
		When       string
	}

	digestData struct {
		Name         string
		AppURL       string
		Expired      []digestLine
		ExpiringSoon []digestLine
	}
)

func NewNotifyService(foodRepository food.FoodRepository, userRepository user.UserRepository, mailer mailing.Mailer) NotifyService {
	return &notifyService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		mailer:         mailer,
		appURL:         utils.GetConfig("APP_URL"),
		now:            time.Now,
	}
}

func when(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", days)
}

func (s *notifyService) SendExpiryDigest(ctx context.Context, userID string) (domain.DigestResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DigestResponse{}, domain.ErrUserNotFound
		}
		return domain.DigestResponse{}, err
	}

	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.DigestResponse{}, err
	}

	now := s.now()
	data := digestData{Name: u.Name, AppURL: s.appURL}
	for _, row := range rows {
		item := food.ToFoodItem(row)
		c, err := inventory.Classify(item, now)
		if err != nil {
			utils.LogError("notify", "SendExpiryDigest", "classifying item", item.ID, err)
			continue
		}
		line := digestLine{
			Name:       item.Name,
			Quantity:   item.Quantity.String(),
			Unit:       item.Unit,
			ExpiryDate: item.ExpiryDate,
			When:       when(c.DaysUntilExpiry),
		}
		switch {
		case c.IsExpired:
			data.Expired = append(data.Expired, line)
		case c.IsExpiringSoon:
			data.ExpiringSoon = append(data.ExpiringSoon, line)
		}
	}

	res := domain.DigestResponse{Expired: len(data.Expired), ExpiringSoon: len(data.ExpiringSoon)}
	if res.Expired == 0 && res.ExpiringSoon == 0 {
		return res, nil
	}

	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, data); err != nil {
		return res, err
	}
	if err := s.mailer.Send(u.Email, digestSubject, body.String()); err != nil {
		utils.LogError("notify", "SendExpiryDigest", "sending mail", userID, err)
		return res, err
	}
	res.Sent = true
	return res, nil
}

func (s *notifyService) SendAllDigests(ctx context.Context) (int, error) {
	users, err := s.userRepository.GetDigestRecipients(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		res, err := s.SendExpiryDigest(ctx, u.ID.String())
		if err != nil {
			continue
		}
		if res.Sent {
			sent++
		}
	}
	utils.Logger().WithField("sent", sent).WithField("recipients", len(users)).Info("expiry digests processed")
	return sent, nil
}
