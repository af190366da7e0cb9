package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskPriceRefresh = "pricing.cache.refresh"

type PriceRefreshPayload struct {
	PriceRefs []string `json:"priceRefs"`
}

func NewPriceRefreshTask(payload PriceRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPriceRefresh, data), nil
}

func ParsePriceRefreshPayload(task *asynq.Task) (PriceRefreshPayload, error) {
	var payload PriceRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return PriceRefreshPayload{}, err
	}
	return payload, nil
}
