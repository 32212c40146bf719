// Package control provides the per-tick controllers of the homing model.
//
// Controllers implement the [motion.SteeringController] and
// [motion.SpeedController] interfaces:
//
//   - [Steering]: proportional turn toward the target, shortest way round
//   - [Throttle]: linear ramp while far, geometric drag while braking
//
// # Usage
//
//	steer := control.NewSteering(0.05)
//	throttle := control.NewThrottle(6, 0.2, 0.95, 200)
//	angle = steer.UpdateAngle(angle, dx, dy)
//	speed = throttle.UpdateSpeed(speed, dx, dy)
//
// Both are total over all real inputs and never fail.
package control
