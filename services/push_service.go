package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/models"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// SNSClient is the slice of the SNS client used for mobile push.
type SNSClient interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	db          *gorm.DB
	sns         SNSClient
	platformArn string
	log         zerolog.Logger
}

func NewPushService(db *gorm.DB, sns SNSClient, platformArn string, log zerolog.Logger) *PushService {
	return &PushService{db: db, sns: sns, platformArn: platformArn, log: log}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device token.
func (p *PushService) RegisterDevice(ctx context.Context, email string, req RegisterDeviceReq) (*models.UserDevice, error) {
	platform := strings.ToLower(req.Platform)
	if platform != "android" && platform != "ios" {
		return nil, ErrUnknownPlatform
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(req.Token),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create platform endpoint: %w", err)
	}

	hash := tokenHash(req.Token)
	var existing models.UserDevice
	err = p.db.WithContext(ctx).Where("user_email = ? AND token_hash = ?", email, hash).First(&existing).Error
	if err == nil {
		existing.EndpointARN = aws.ToString(out.EndpointArn)
		existing.Platform = platform
		existing.UpdatedAt = time.Now()
		return &existing, p.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dev := &models.UserDevice{
		UserEmail:   email,
		Platform:    platform,
		TokenHash:   hash,
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	return dev, p.db.WithContext(ctx).Create(dev).Error
}

// SetEnabled toggles push delivery for every device of the user.
func (p *PushService) SetEnabled(ctx context.Context, email string, enabled bool) error {
	return p.db.WithContext(ctx).Model(&models.UserDevice{}).
		Where("user_email = ?", email).
		Update("enabled", enabled).Error
}

// PushToUser publishes to every enabled device. Delivery is best-effort.
func (p *PushService) PushToUser(ctx context.Context, email, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.WithContext(ctx).Where("user_email = ? AND enabled = ?", email, true).Find(&devices).Error; err != nil {
		p.log.Warn().Err(err).Str("user", email).Msg("loading push devices failed")
		return
	}
	if len(devices) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})

	for _, d := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.Warn().Err(err).Str("user", email).Str("endpoint", d.EndpointARN).Msg("push publish failed")
		}
	}
}
