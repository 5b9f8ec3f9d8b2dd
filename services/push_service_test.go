package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vonvha/Nutri-Smart/models"
)

type fakeSNS struct {
	mu        sync.Mutex
	endpoints int
	published []string
}

func (f *fakeSNS) CreatePlatformEndpoint(_ context.Context, in *awssns.CreatePlatformEndpointInput, _ ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpoints++
	return &awssns.CreatePlatformEndpointOutput{
		EndpointArn: aws.String(fmt.Sprintf("arn:endpoint/%s", aws.ToString(in.Token))),
	}, nil
}

func (f *fakeSNS) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, aws.ToString(in.TargetArn))
	return &awssns.PublishOutput{}, nil
}

func TestPushService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sns := &fakeSNS{}
	push := NewPushService(db, sns, "arn:app", zerolog.Nop())

	_, err := push.RegisterDevice(ctx, carla, RegisterDeviceReq{Platform: "Android", Token: "tok-1"})
	require.NoError(t, err)
	dev, err := push.RegisterDevice(ctx, carla, RegisterDeviceReq{Platform: "android", Token: "tok-1"})
	require.NoError(t, err)
	assert.Equal(t, "arn:endpoint/tok-1", dev.EndpointARN)

	var n int64
	require.NoError(t, db.Model(&models.UserDevice{}).Where("user_email = ?", carla).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = push.RegisterDevice(ctx, carla, RegisterDeviceReq{Platform: "windows", Token: "tok-2"})
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	push.PushToUser(ctx, carla, "Hola", "Cuerpo", nil)
	assert.Equal(t, []string{"arn:endpoint/tok-1"}, sns.published)

	require.NoError(t, push.SetEnabled(ctx, carla, false))
	push.PushToUser(ctx, carla, "Hola", "Cuerpo", nil)
	assert.Len(t, sns.published, 1)
}

func TestNotifications_PushOnEmit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sns := &fakeSNS{}
	push := NewPushService(db, sns, "arn:app", zerolog.Nop())
	_, err := push.RegisterDevice(ctx, carla, RegisterDeviceReq{Platform: "ios", Token: "tok"})
	require.NoError(t, err)

	NewNotificationService(db, nil, push, zerolog.Nop()).Emit(ctx, carla, NotificationInfo, "Nuevo alimento", "Ceviche")
	assert.Len(t, sns.published, 1)
}
