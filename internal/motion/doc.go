// Package motion provides the core primitives of the homing motion model.
//
// The package defines the shared state and the component interfaces that
// turn a target offset into steering, speed and position updates:
//
//   - [State]: position, facing angle and scalar speed of the marker
//   - [SteeringController]: computes the new facing angle
//   - [SpeedController]: computes the new speed from distance to target
//   - [PositionIntegrator]: advances position along the facing angle
//   - [TargetSource]: non-blocking query for the current target point
//   - [Sink]: consumes the state once per tick
//
// # Coordinates
//
// Positions live in screen space with y increasing downward. Angles are in
// degrees with positive values turning counter-clockwise in the usual
// mathematical plane, so every conversion between the two negates the
// vertical component.
//
// # Thread Safety
//
// State is a plain value. It is owned by a single tick loop and is never
// shared across goroutines.
package motion
