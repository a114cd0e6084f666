package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskmanager/internal/model"
	"taskmanager/internal/view"
)

// TaskRequest is the body of the create and update forms.
type TaskRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
	DueDate     string `form:"due_date" binding:"required,datetime=2006-01-02"`
	Assignee    string `form:"assignee" binding:"required,max=255"`
	Priority    string `form:"priority" binding:"required,oneof=High Medium Low"`
	Status      string `form:"status" binding:"required,oneof=Pending Completed"`
}

func (r TaskRequest) toTask(id uint64) (*model.Task, error) {
	due, err := time.Parse(model.DateLayout, r.DueDate)
	if err != nil {
		return nil, err
	}
	return &model.Task{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Assignee:    r.Assignee,
		Priority:    model.Priority(r.Priority),
		Status:      model.Status(r.Status),
	}, nil
}

func (r TaskRequest) form() view.Form {
	return view.Form{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Assignee:    r.Assignee,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

// validationMessages turns a binding error into one line per failing field,
// named after the form field the user sees.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"the form could not be read"}
	}

	reqType := reflect.TypeOf(TaskRequest{})
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if f, ok := reqType.FieldByName(fe.StructField()); ok {
			name = f.Tag.Get("form")
		}

		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", name))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", name, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", name))
		}
	}
	return messages
}
