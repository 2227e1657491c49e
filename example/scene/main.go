package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/narrowphase"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Reporter prints query results
type Reporter interface {
	ReportCollision(collision narrowphase.Collision)
	ReportRay(index int, result narrowphase.RaycastResult, hit bool)
}

// SimpleReporter prints to stdout
type SimpleReporter struct{}

func (r *SimpleReporter) ReportCollision(c narrowphase.Collision) {
	pointA, pointB := c.Contact.WorldPoints(c.A.Transform, c.B.Transform)
	fmt.Printf("collision %s / %s\n", c.A.ID, c.B.ID)
	fmt.Printf("   Normal: %v\n", c.Contact.Normal)
	fmt.Printf("   Penetration: %.6f\n", c.Contact.Penetration)
	fmt.Printf("   Point on %s: %v\n", c.A.ID, pointA)
	fmt.Printf("   Point on %s: %v\n", c.B.ID, pointB)
}

func (r *SimpleReporter) ReportRay(index int, result narrowphase.RaycastResult, hit bool) {
	if !hit {
		fmt.Printf("ray %d: no hit\n", index)
		return
	}
	fmt.Printf("ray %d: hit %s at %v (distance %.6f)\n", index, result.Object.ID, result.Hit.Point, result.Hit.Distance)
}

func run(c *cli.Context, reporter Reporter) error {
	logger := zap.NewNop()
	if c.Bool("verbose") {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync() //nolint:errcheck

	f, err := os.Open(c.String("scene"))
	if err != nil {
		return err
	}
	defer f.Close()

	scene, err := LoadScene(f)
	if err != nil {
		return err
	}
	if c.Bool("sat") {
		scene.Config.OrientedBoxPairs = narrowphase.OrientedBoxSAT
	}

	detector, err := narrowphase.NewDetector(scene.Config, logger)
	if err != nil {
		return err
	}

	objects, err := scene.BuildObjects()
	if err != nil {
		return err
	}
	logger.Info("scene loaded", zap.Int("objects", len(objects)), zap.Int("rays", len(scene.Rays)))
	for _, o := range objects {
		bounds := o.ComputeAABB()
		logger.Debug("object bounds",
			zap.String("id", o.ID),
			zap.Any("center", bounds.Center()),
			zap.Any("halfExtents", bounds.HalfExtents()))
	}

	collisions, err := detector.NarrowPhase(c.Context, CandidatePairs(objects), c.Int("workers"))
	if err != nil {
		return err
	}
	for _, collision := range collisions {
		reporter.ReportCollision(collision)
	}

	for i, r := range scene.Rays {
		ray := narrowphase.NewRay(mgl64.Vec3(r.Origin), mgl64.Vec3(r.Direction))
		result, hit, err := detector.Raycast(ray, objects, r.RaycastOptions(objects))
		if err != nil {
			logger.Warn("raycast reported errors", zap.Int("ray", i), zap.Error(err))
		}
		reporter.ReportRay(i, result, hit)
	}

	return nil
}

func newApp(reporter Reporter) *cli.App {
	return &cli.App{
		Name:  "scene",
		Usage: "run the narrow phase and raycasts over a YAML scene",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scene", Aliases: []string{"s"}, Value: "scene.yaml", Usage: "scene file"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 0, Usage: "narrow phase workers, 0 uses the scene config"},
			&cli.BoolFlag{Name: "sat", Usage: "test oriented box pairs with the separating axis test"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log to stderr"},
		},
		Action: func(c *cli.Context) error {
			return run(c, reporter)
		},
	}
}

func main() {
	if err := newApp(&SimpleReporter{}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
