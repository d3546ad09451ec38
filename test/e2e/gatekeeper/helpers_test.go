package gatekeeper_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
)

/*
 * Common constants and helpers for gatekeeper end-to-end tests:
 * container setup, SDK construction, and shared fixtures.
 */

const (
	testImageName = "gatekeeper-test:latest"

	jwtSecret  = "e2e-jwt-secret-that-is-at-least-32-characters"
	anonKey    = "e2e-anon-key"
	serviceKey = "e2e-service-key"

	testPassword = "longpass1"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Gatekeeper Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Gatekeeper Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatekeeper/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Image might not exist
}

// setupGatekeeperContainer starts the service with its embedded identity
// provider and returns an SDK client pointed at it. extraEnv overrides or
// extends the default environment.
func setupGatekeeperContainer(t *testing.T, extraEnv map[string]string) *gatesdk.SDKClient {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"PROVIDER_MODE":        "embedded",
		"PROVIDER_JWT_SECRET":  jwtSecret,
		"PROVIDER_ANON_KEY":    anonKey,
		"PROVIDER_SERVICE_KEY": serviceKey,
		"APPROVAL_POLICY":      "auto",
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
		// Raise the strict limits so rapid-fire test requests don't trip
		// the production thresholds.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return gatesdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

func registration(email, username, role string) gatesdk.RegisterRequest {
	return gatesdk.RegisterRequest{
		First:    "End",
		Last:     "ToEnd",
		Email:    email,
		Password: testPassword,
		Username: username,
		Role:     role,
		Agree:    true,
	}
}
