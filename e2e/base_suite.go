package e2e

import (
	"chat-courier/client"
	"context"
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type BaseCourierSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and checks the courier is serving.
func (s *BaseCourierSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.WebsocketURL == "" {
		s.T().Skip("COURIER_WS_URL not set")
	}

	conn, err := grpc.NewClient(s.Config.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer conn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	s.Require().NoError(err, "courier health check failed at "+s.Config.GRPCAddr)
	s.Require().Equal(healthpb.HealthCheckResponse_SERVING, resp.Status)
}

// Step prints a colorized header for a scenario step.
func (s *BaseCourierSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// User returns a fresh user id so runs never see each other's inboxes.
func (s *BaseCourierSuite) User(name string) string {
	return name + "-" + uuid.NewString()[:8]
}

func (s *BaseCourierSuite) Dial(userID string) *client.Client {
	c, err := client.Dial(context.Background(), s.Config.WebsocketURL, s.Config.UserIDHeader, userID)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = c.Close() })
	return c
}
