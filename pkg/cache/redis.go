package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizmaster/internal/model"

	"github.com/go-redis/redis/v8"
)

const questionTTL = 24 * time.Hour

// RedisCache caches a quiz's question list. Admin question mutations
// invalidate the entry; everything else tolerates misses.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func questionKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:questions", quizID)
}

func (c *RedisCache) GetQuestions(quizID uint) ([]model.Question, error) {
	data, err := c.client.Get(c.ctx, questionKey(quizID)).Bytes()
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *RedisCache) SetQuestions(quizID uint, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, questionKey(quizID), data, questionTTL).Err()
}

func (c *RedisCache) InvalidateQuestions(quizID uint) error {
	return c.client.Del(c.ctx, questionKey(quizID)).Err()
}
