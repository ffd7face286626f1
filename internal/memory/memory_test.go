package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"codeberg.org/docrouter/server/internal/llm"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisMemory(t *testing.T, maxMessages int, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return NewRedisWithClient(client, maxMessages, ttl), mr
}

func turn(i int) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf("question %d", i)},
		{Role: llm.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
	}
}

// runs the same behavior checks against every implementation
func implementations(t *testing.T, maxMessages int) map[string]ChatMemory {
	redisMemory, _ := newRedisMemory(t, maxMessages, time.Hour)

	return map[string]ChatMemory{
		"in-memory": NewInMemory(maxMessages),
		"redis":     redisMemory,
	}
}

func TestChatMemory_Window(t *testing.T) {
	for name, mem := range implementations(t, 4) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 1; i <= 3; i++ {
				require.NoError(t, mem.Add(ctx, "conv", turn(i)...))
			}

			messages, err := mem.Messages(ctx, "conv")
			require.NoError(t, err)
			require.Len(t, messages, 4)

			assert.Equal(t, "question 2", messages[0].Content)
			assert.Equal(t, llm.RoleUser, messages[0].Role)
			assert.Equal(t, "answer 3", messages[3].Content)
			assert.Equal(t, llm.RoleAssistant, messages[3].Role)
		})
	}
}

func TestChatMemory_IsolationAndClear(t *testing.T) {
	for name, mem := range implementations(t, 10) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, mem.Add(ctx, "a", turn(1)...))
			require.NoError(t, mem.Add(ctx, "b", turn(2)...))
			require.NoError(t, mem.Add(ctx, "b"))

			require.NoError(t, mem.Clear(ctx, "a"))

			a, err := mem.Messages(ctx, "a")
			require.NoError(t, err)
			assert.Empty(t, a)

			b, err := mem.Messages(ctx, "b")
			require.NoError(t, err)
			assert.Len(t, b, 2)
		})
	}
}

func TestInMemory_DefaultWindow(t *testing.T) {
	ctx := context.Background()
	mem := NewInMemory(0)

	for i := 1; i <= 6; i++ {
		require.NoError(t, mem.Add(ctx, "conv", turn(i)...))
	}

	messages, err := mem.Messages(ctx, "conv")
	require.NoError(t, err)
	require.Len(t, messages, defaultMaxMessages)
	assert.Equal(t, "question 2", messages[0].Content)

	// returned slice is a copy
	messages[0].Content = "changed"

	again, err := mem.Messages(ctx, "conv")
	require.NoError(t, err)
	assert.Equal(t, "question 2", again[0].Content)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	mem, mr := newRedisMemory(t, 10, time.Minute)

	require.NoError(t, mem.Add(ctx, "conv", turn(1)...))

	key := fmt.Sprintf(keyConversation, "conv")
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)

	messages, err := mem.Messages(ctx, "conv")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRedis_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	mem, mr := newRedisMemory(t, 10, 0)

	key := fmt.Sprintf(keyConversation, "conv")
	_, err := mr.RPush(key, "not json")
	require.NoError(t, err)

	require.NoError(t, mem.Add(ctx, "conv", turn(1)...))

	messages, err := mem.Messages(ctx, "conv")
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestChatMemory_OddWindowStartsWithUser(t *testing.T) {
	for name, mem := range implementations(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 1; i <= 3; i++ {
				require.NoError(t, mem.Add(ctx, "conv", turn(i)...))
			}

			// the last three stored are answer 2, question 3, answer 3
			messages, err := mem.Messages(ctx, "conv")
			require.NoError(t, err)
			require.Len(t, messages, 2)

			assert.Equal(t, llm.RoleUser, messages[0].Role)
			assert.Equal(t, "question 3", messages[0].Content)
			assert.Equal(t, "answer 3", messages[1].Content)
		})
	}
}

func TestWindow_OnlyAssistantMessages(t *testing.T) {
	messages := []llm.Message{
		{Role: llm.RoleAssistant, Content: "a"},
		{Role: llm.RoleAssistant, Content: "b"},
		{Role: llm.RoleAssistant, Content: "c"},
	}

	assert.Empty(t, window(messages, 2))
	assert.Len(t, window(messages, 3), 3)
}
