package main

import (
	"embed"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/textscenes/internal/application/game"
	"github.com/younwookim/textscenes/internal/application/replay"
	"github.com/younwookim/textscenes/internal/application/system"
	"github.com/younwookim/textscenes/internal/infrastructure/render"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	scenesFlag := flag.String("scenes", "demo", "Scene list to play (configs/scenes/<name>.scn or .json)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay recorded input headlessly and exit")
	pacedFlag := flag.Bool("paced", false, "Replay at the configured frame rate instead of as fast as possible")
	checkFlag := flag.Bool("check", false, "Lay out every scene once, report problems and exit")
	verboseFlag := flag.Bool("v", false, "Log scene transitions")
	flag.Parse()

	var trace *log.Logger
	if *verboseFlag {
		trace = log.New(os.Stderr, "scene: ", log.LstdFlags)
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}

	scenes := *scenesFlag
	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Scenes != "" && data.Scenes != scenes {
			log.Printf("Replay was recorded with scenes %q, using them", data.Scenes)
			scenes = data.Scenes
		}
	}

	headless := *checkFlag || data != nil
	app, err := LoadApp(fsys, scenes, !headless)
	if err != nil {
		log.Fatalf("Failed to load scenes: %v", err)
	}
	app.WarnMissingGlyphs(log.Default())

	if err := app.Check(nil); err != nil {
		log.Fatalf("Scene check failed: %v", err)
	}
	if *checkFlag {
		log.Printf("%d scenes in %s fit a pool of %d (peak %d)",
			len(app.Defs), scenes, app.Pool.Cap(), app.Pool.HighWater())
		return
	}

	if data != nil {
		seq, err := app.Replay(data, *pacedFlag, trace)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		log.Printf("Replay finished: %d frames, %d scenes, %d cycles, pool peak %d/%d",
			seq.Frames(), seq.ScenesCompleted(), seq.Cycles(), app.Pool.HighWater(), app.Pool.Cap())
		return
	}

	if err := play(app, *recordFlag, trace); err != nil {
		log.Fatal(err)
	}
}

// play runs the scene list in a window until it is closed or Escape is pressed
func play(app *App, recordFilename string, trace *log.Logger) error {
	display := app.Config.App.Display

	keyboard, err := system.NewKeyboardSource(app.Config.App.Input)
	if err != nil {
		return err
	}

	var source system.LevelSource = keyboard
	var recorder *replay.Recorder
	if recordFilename != "" {
		recorder = replay.NewRecorder(app.Scenes, keyboard)
		source = recorder
		log.Printf("Recording enabled: %s", recordFilename)
	}

	seq, err := app.Sequencer(system.NewConfirmInput(source), trace)
	if err != nil {
		return err
	}

	renderer, err := render.NewRenderer(display.ScreenWidth, display.ScreenHeight,
		display.Background.RGBA(), render.DefaultCacheSize)
	if err != nil {
		return err
	}
	for id, atlas := range app.Atlases {
		renderer.AddAtlas(id, atlas)
	}

	g := game.New(seq, renderer, display.ScreenWidth, display.ScreenHeight)
	g.OnUpdate(func() error {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		// F5: Save recording manually
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) && recorder != nil {
			saveRecording(recorder, recordFilename)
		}
		return nil
	})

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	err = ebiten.RunGame(g)
	seq.Close()
	if recorder != nil {
		saveRecording(recorder, recordFilename)
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// saveRecording saves the current recording to file
func saveRecording(recorder *replay.Recorder, filename string) {
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, recorder.FrameCount())
	}
}
