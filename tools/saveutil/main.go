package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/internal/infrastructure/storage"
	"github.com/gridbugs/gws/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		snap, ok := load()
		if !ok {
			return
		}
		fmt.Printf("level:      %d\n", snap.Level)
		fmt.Printf("turn:       %d\n", snap.Turn)
		fmt.Printf("size:       %dx%d\n", snap.World.Size.Width, snap.World.Size.Height)
		fmt.Printf("entities:   %d\n", len(snap.World.Entities))
		fmt.Printf("lights:     %d\n", len(snap.World.Lights))
		fmt.Printf("visibility: epoch %d\n", snap.VisibilityEpoch)
		fmt.Printf("commitment: epoch %d\n", snap.CommitmentEpoch)
	case "map":
		snap, ok := load()
		if !ok {
			return
		}
		fmt.Print(render(snap))
	case "buildid":
		if len(os.Args) < 3 {
			fmt.Println("Usage: saveutil buildid <YYYY-MM-DD>")
			return
		}
		id, err := version.CalculateBuildID(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid date: %v\n", err)
			return
		}
		fmt.Println(id)
	default:
		printHelp()
	}
}

func load() (engine.Snapshot, bool) {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: saveutil %s <file%s>\n", os.Args[1], storage.FileExt)
		return engine.Snapshot{}, false
	}
	f, err := os.Open(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot open save: %v\n", err)
		return engine.Snapshot{}, false
	}
	defer f.Close()

	snap, err := storage.ReadSnapshot(f)
	if err != nil {
		fmt.Printf("Invalid save: %v\n", err)
		return engine.Snapshot{}, false
	}
	return snap, true
}

var backgroundSymbols = map[enums.BackgroundTile]byte{
	enums.BackgroundFloor:   '.',
	enums.BackgroundGround:  ',',
	enums.BackgroundWall:    '#',
	enums.BackgroundIceWall: '~',
}

// render рисует уровень целиком, без тумана войны. Сущность закрывает покрытие.
func render(snap engine.Snapshot) string {
	size := snap.World.Size
	rows := make([][]byte, size.Height)
	for y := range rows {
		rows[y] = make([]byte, size.Width)
		for x := range rows[y] {
			rows[y][x] = backgroundSymbols[snap.World.Backgrounds[y*size.Width+x]]
		}
	}
	for _, e := range snap.World.Entities {
		if sym := e.Foreground.Symbol(); sym != "" {
			rows[e.Coord.Y][e.Coord.X] = sym[0]
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printHelp() {
	fmt.Println(`Save Utility - просмотр сохранений gws
Commands:
  info <file>        - заголовок и сводка сохранения
  map <file>         - карта уровня в ASCII (без тумана войны)
  buildid <date>     - номер сборки для даты (формат: YYYY-MM-DD)`)
}
