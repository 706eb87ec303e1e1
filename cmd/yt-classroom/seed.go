package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/model"
)

const demoPassword = "classroom"

type demoAccount struct {
	email string
	name  string
	role  model.Role
}

var (
	demoTeacher = demoAccount{email: "teacher@example.com", name: "Demo Teacher", role: model.RoleTeacher}
	demoStudent = demoAccount{email: "student@example.com", name: "Demo Student", role: model.RoleStudent}
)

type demoLesson struct {
	title     string
	youtubeID string
}

var demoCourses = []struct {
	name    string
	lessons []demoLesson
}{
	{
		name: "Go Basics",
		lessons: []demoLesson{
			{title: "Why Go", youtubeID: "rFejpH_tAHM"},
			{title: "Concurrency is not parallelism", youtubeID: "oV9rvDllKEg"},
		},
	},
	{
		name: "Computer Science Crash Course",
		lessons: []demoLesson{
			{title: "Early computing", youtubeID: "O5nskjZ_GoI"},
		},
	},
}

// seed creates the demo accounts and the teacher's courses, then signs out
func seed(ctx context.Context, mem *gateway.Memory) error {
	teacherUID, err := createAccount(ctx, mem, demoTeacher)
	if err != nil {
		return err
	}
	if _, err := createAccount(ctx, mem, demoStudent); err != nil {
		return err
	}

	for _, c := range demoCourses {
		courseID, err := mem.Add(ctx, gateway.CollectionCourses, map[string]any{
			gateway.FieldName:      c.name,
			gateway.FieldCreatedBy: teacherUID,
		})
		if err != nil {
			return errors.Wrapf(err, "seed course %s", c.name)
		}
		for i, l := range c.lessons {
			_, err := mem.Add(ctx, gateway.LessonsPath(courseID), map[string]any{
				gateway.FieldTitle:     l.title,
				gateway.FieldYouTubeID: l.youtubeID,
				gateway.FieldIndex:     i + 1,
			})
			if err != nil {
				return errors.Wrapf(err, "seed lesson %s", l.title)
			}
		}
	}
	return nil
}

func createAccount(ctx context.Context, mem *gateway.Memory, account demoAccount) (string, error) {
	id, err := mem.SignUp(ctx, account.email, demoPassword)
	if err != nil {
		return "", errors.Wrapf(err, "seed account %s", account.email)
	}
	err = mem.Set(ctx, gateway.UserPath(id.UID), map[string]any{
		gateway.FieldName:  account.name,
		gateway.FieldEmail: account.email,
		gateway.FieldRole:  account.role.String(),
	})
	if err != nil {
		return "", errors.Wrapf(err, "seed profile %s", account.email)
	}
	if err := mem.SignOut(ctx); err != nil {
		return "", errors.Wrap(err, "seed sign out")
	}
	return id.UID, nil
}
