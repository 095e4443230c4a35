package scene

import (
	"math"

	"github.com/achilleasa/bvhviz/types"
)

type placement struct {
	kind      ObjectKind
	transform types.Transform
}

func rotated(position types.Vec3, scale types.Vec3, axis types.Vec3, degrees float32) types.Transform {
	return types.Transform{
		Position: position,
		Scale:    scale,
		Rotation: types.Rotation{Axis: axis, Angle: degrees * math.Pi / 180},
	}
}

// The default scene is hard-coded; scenes are not loaded from disk.
var defaultPlacements = []placement{
	{CubeObject, types.TranslateScale(types.Vec3{0, 0, 0}, 1)},
	{SphereObject, types.TranslateScale(types.Vec3{3, 0, 0}, 1)},
	{CubeObject, rotated(types.Vec3{-4, 1, 2}, types.Vec3{1, 1, 1}, types.Vec3{0, 1, 0}, 45)},
	{SphereObject, types.TranslateScale(types.Vec3{6, 2, -3}, 2)},
	{CubeObject, rotated(types.Vec3{0, 4, -6}, types.Vec3{2, 1, 1}, types.Vec3{1, 0, 1}, 30)},
	{SphereObject, types.TranslateScale(types.Vec3{-6, -1, -4}, 1.5)},
	{CubeObject, rotated(types.Vec3{8, -2, 4}, types.Vec3{1, 2, 1}, types.Vec3{0, 0, 1}, 15)},
	{SphereObject, types.TranslateScale(types.Vec3{-2, 3, 5}, 1)},
}

// Populate the scene with the default objects.
func LoadDefault(s *Scene) error {
	for _, p := range defaultPlacements {
		if _, err := s.AddObject(p.kind, p.transform); err != nil {
			return err
		}
	}
	s.logger.Infof("loaded default scene with %d objects", s.Len())
	return nil
}
