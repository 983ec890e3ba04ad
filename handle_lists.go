package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dailyflo/dailyflo/database"
)

type listResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Color          string `json:"color,omitempty"`
	Icon           string `json:"icon,omitempty"`
	IsDefault      bool   `json:"is_default"`
	SortOrder      int    `json:"sort_order"`
	PendingCount   int64  `json:"pending_count"`
	CompletedCount int64  `json:"completed_count"`
}

func toListResponse(store *database.Store, list *database.List) listResponse {
	pending, completed, err := store.CountTasks(list.ID)
	if err != nil {
		log.Warnf("Failed to count tasks for list %s: %v", list.ID, err)
	}
	return listResponse{
		ID:             list.ID,
		Name:           list.Name,
		Description:    list.Description,
		Color:          list.Color,
		Icon:           list.Icon,
		IsDefault:      list.IsDefault,
		SortOrder:      list.SortOrder,
		PendingCount:   pending,
		CompletedCount: completed,
	}
}

// HandleListLists returns every list with its open task count.
func HandleListLists(c *gin.Context) {
	store := storeFrom(c)

	lists, err := store.ListLists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]listResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, toListResponse(store, &lists[i]))
	}
	c.JSON(http.StatusOK, gin.H{"lists": responses, "total_count": len(responses)})
}

type listPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsDefault   bool   `json:"is_default"`
	SortOrder   int    `json:"sort_order"`
}

// HandleCreateList creates a list. The name is required and trimmed.
func HandleCreateList(c *gin.Context) {
	store := storeFrom(c)

	var payload listPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required"}})
		return
	}

	list, err := store.CreateList(database.ListInput{
		Name:        payload.Name,
		Description: payload.Description,
		Color:       payload.Color,
		Icon:        payload.Icon,
		IsDefault:   payload.IsDefault,
		SortOrder:   payload.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toListResponse(store, list))
}
