// Command yt-classroom runs the client against an in-memory backend seeded
// with a demo teacher, a demo student and two courses.
package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/platform"
	"github.com/ytget/yt-classroom/internal/ui"
)

const (
	AppID = "com.ytget.yt-classroom.demo"

	WindowWidth  = 900
	WindowHeight = 640
)

func main() {
	log, err := logger.New("dev")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	mem := gateway.NewMemory()
	if err := seed(context.Background(), mem); err != nil {
		log.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Demo accounts: %s and %s, password %q\n", demoTeacher.email, demoStudent.email, demoPassword)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow("YT Classroom (demo)")
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, ui.Backend{
		Gateway:   gateway.NewMemoryGateway(mem),
		Metadata:  platform.DisabledMetadataService{},
		Playlists: platform.NewPlaylistParserService(),
		Log:       log,
	})
	myApp.Lifecycle().SetOnStarted(root.Start)
	myApp.Lifecycle().SetOnStopped(root.Stop)

	// Show and run
	myWindow.ShowAndRun()
}
