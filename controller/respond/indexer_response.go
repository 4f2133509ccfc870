package respond

import (
	"time"

	"storage-market-indexer/service/indexer_service"
)

// RescanRequest request structure for block rescan
type RescanRequest struct {
	StartHeight int64 `json:"start_height" binding:"gte=0" example:"100000"`
	EndHeight   int64 `json:"end_height" binding:"required,gtefield=StartHeight" example:"100100"`
}

// RescanResponse response structure for block rescan
type RescanResponse struct {
	Message     string `json:"message" example:"Block rescan task started successfully"`
	Chain       string `json:"chain" example:"sepolia"`
	StartHeight int64  `json:"start_height" example:"100000"`
	EndHeight   int64  `json:"end_height" example:"100100"`
	TaskID      string `json:"task_id" example:"3f0c7c52-8a22-4b7e-9c55-2b1f0f4d6a10"`
}

// RescanStatusResponse response structure for rescan status query
type RescanStatusResponse struct {
	TaskID            string  `json:"task_id" example:"3f0c7c52-8a22-4b7e-9c55-2b1f0f4d6a10"`
	Chain             string  `json:"chain" example:"sepolia"`
	Status            string  `json:"status" example:"running"` // idle, running, completed, cancelled, failed
	StartHeight       int64   `json:"start_height" example:"100000"`
	EndHeight         int64   `json:"end_height" example:"100100"`
	CurrentHeight     int64   `json:"current_height" example:"100050"`
	ProcessedBlocks   int64   `json:"processed_blocks" example:"50"`
	TotalBlocks       int64   `json:"total_blocks" example:"101"`
	DecodedEvents     int64   `json:"decoded_events" example:"12"`
	Progress          float64 `json:"progress" example:"49.50"` // percentage
	Speed             float64 `json:"speed" example:"12.34"`    // blocks per second
	StartTime         int64   `json:"start_time" example:"1699999999"`
	ElapsedTime       int64   `json:"elapsed_time" example:"4050"`        // milliseconds
	EstimatedTimeLeft int64   `json:"estimated_time_left" example:"4100"` // milliseconds
	ErrorMessage      string  `json:"error_message,omitempty" example:""`
}

// RescanStopResponse response structure for stop rescan
type RescanStopResponse struct {
	Message string `json:"message" example:"Rescan task stopped successfully"`
	TaskID  string `json:"task_id" example:"3f0c7c52-8a22-4b7e-9c55-2b1f0f4d6a10"`
	Status  string `json:"status" example:"cancelled"`
}

// ToRescanStatusResponse convert a task snapshot, deriving progress and time estimates while running
func ToRescanStatusResponse(task *indexer_service.RescanTask, now time.Time) RescanStatusResponse {
	response := RescanStatusResponse{
		TaskID:          task.TaskID,
		Chain:           task.Chain,
		Status:          string(task.Status),
		StartHeight:     task.StartHeight,
		EndHeight:       task.EndHeight,
		CurrentHeight:   task.CurrentHeight,
		ProcessedBlocks: task.ProcessedBlocks,
		TotalBlocks:     task.TotalBlocks,
		DecodedEvents:   task.DecodedEvents,
		ErrorMessage:    task.ErrorMessage,
	}
	if !task.StartTime.IsZero() {
		response.StartTime = task.StartTime.Unix()
	}
	if task.TotalBlocks > 0 {
		response.Progress = float64(task.ProcessedBlocks) / float64(task.TotalBlocks) * 100
	}

	if task.Status != indexer_service.RescanStatusRunning || task.StartTime.IsZero() {
		return response
	}
	elapsed := now.Sub(task.StartTime)
	response.ElapsedTime = elapsed.Milliseconds()
	if task.ProcessedBlocks > 0 && elapsed > 0 {
		response.Speed = float64(task.ProcessedBlocks) / elapsed.Seconds()
		remaining := task.TotalBlocks - task.ProcessedBlocks
		if remaining > 0 && response.Speed > 0 {
			response.EstimatedTimeLeft = int64(float64(remaining) / response.Speed * 1000)
		}
	}
	return response
}

// HealthResponse health check response
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"indexer"`
}
