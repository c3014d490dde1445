// Package physics implements the particle model of the raindrop simulation.
//
// Each frame runs three passes over a [Set]:
//
//   - integration (see package integrators): damped position Verlet
//   - [Relaxer]: pairwise minimum-separation constraint, [BruteForce] or [Grid]
//   - [ApplyBoundary]: clamp idle particles, drop particles that have exited
//
// Lifecycle is carried by [Phase], which is either [Idle] or [Exiting]; an
// exit direction exists exactly when a particle is exiting.
//
// Edge selection lives here too: [ChooseSpawnEdge] maps tilt to the edge
// particles pour in from, [NearestEdge] picks each particle's way out.
package physics
