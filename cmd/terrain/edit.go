package main

import (
	"fmt"
	"strconv"
	"strings"

	"terrain-mc/internal/terraform"

	"github.com/go-gl/mathgl/mgl32"
)

// parseEdit reads "x,y,z,radius,strength[,add|subtract]". A y of "ground"
// asks the caller to drop the point onto the surface.
func parseEdit(s string) (terraform.Edit, bool, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 && len(parts) != 6 {
		return terraform.Edit{}, false, fmt.Errorf("edit %q: want 5 or 6 comma separated fields", s)
	}
	var e terraform.Edit
	onGround := false
	nums := make([]float32, 5)
	for i := 0; i < 5; i++ {
		p := strings.TrimSpace(parts[i])
		if i == 1 && p == "ground" {
			onGround = true
			continue
		}
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return terraform.Edit{}, false, fmt.Errorf("edit field %d: %w", i, err)
		}
		nums[i] = float32(v)
	}
	e.Point = mgl32.Vec3{nums[0], nums[1], nums[2]}
	e.Radius = nums[3]
	e.Strength = nums[4]
	e.Mode = terraform.Subtract
	if len(parts) == 6 {
		switch strings.TrimSpace(parts[5]) {
		case "add":
			e.Mode = terraform.Add
		case "subtract", "":
		default:
			return terraform.Edit{}, false, fmt.Errorf("edit mode %q: want add or subtract", parts[5])
		}
	}
	return e, onGround, nil
}
