// Package allocator implements the what-if calculator that spreads a cluster
// setpoint over its parks.
//
// Parks flagged as not controllable keep their availability-scaled capacity
// (Fixed); the energy left once those are accounted for is distributed over
// the controllable parks in proportion to their scaled capacity (Dynamic). A
// setpoint above the cluster's reachable output is reported as a
// GuardViolation and answered with every park's scaled capacity instead.
//
// Every call is a pure function of the cluster and the request.
package allocator
