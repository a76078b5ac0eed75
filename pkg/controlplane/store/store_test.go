package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// sharedContainer holds the PostgreSQL container reused across this
// package's tests, following the teacher's pkg/store/metadata/postgres
// shared-container TestMain pattern.
var sharedContainer struct {
	cfg Config
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "opcuad_test",
			"POSTGRES_USER":     "opcuad_test",
			"POSTGRES_PASSWORD": "opcuad_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	sharedContainer.cfg = Config{
		Host:     host,
		Port:     port.Int(),
		Database: "opcuad_test",
		User:     "opcuad_test",
		Password: "opcuad_test",
		SSLMode:  "disable",
	}

	exitCode := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
	}
	os.Exit(exitCode)
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(sharedContainer.cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUpsertAndGet(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, NamespaceRegistration{
		NamespaceIndex: 7,
		URI:            "urn:example:sensors",
		Description:    "external sensor bank",
	}))

	got, err := st.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "urn:example:sensors", got.URI)
	require.Equal(t, "external sensor bank", got.Description)
	require.False(t, got.RegisteredAt.IsZero())
}

func TestUpsertOverwritesExisting(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, NamespaceRegistration{NamespaceIndex: 8, URI: "urn:example:a"}))
	require.NoError(t, st.Upsert(ctx, NamespaceRegistration{NamespaceIndex: 8, URI: "urn:example:b"}))

	got, err := st.Get(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, "urn:example:b", got.URI)
}

func TestGet_NotFound(t *testing.T) {
	st := setupTestStore(t)
	_, err := st.Get(context.Background(), 999)
	require.Error(t, err)
}

func TestList_OrderedByIndex(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, NamespaceRegistration{NamespaceIndex: 21, URI: "urn:example:21"}))
	require.NoError(t, st.Upsert(ctx, NamespaceRegistration{NamespaceIndex: 20, URI: "urn:example:20"}))

	regs, err := st.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(regs), 2)

	var prev uint32
	for _, r := range regs {
		require.GreaterOrEqual(t, r.NamespaceIndex, prev)
		prev = r.NamespaceIndex
	}
}
