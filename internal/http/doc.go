// Package http provides HTTP handlers and middleware for the room booking API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at","principal":{"user_id","is_admin"}} with the token also
//     surfaced via the `X-Session-Token` header and a `session_token` cookie.
//   - DELETE /sessions/current: revokes the session token extracted from the
//     Authorization header or session cookie. Returns 204 No Content and clears
//     the cookie.
//   - GET /rooms, POST /rooms, GET /rooms/{id}, PUT /rooms/{id}, DELETE /rooms/{id}:
//     room catalog endpoints exchanging the `roomDTO` payload defined in
//     room_handler.go. Listing is available to any authenticated principal while
//     mutations require admin privileges. `GET /rooms?include=status` attaches the
//     resolved availability to every listed room.
//   - GET /rooms/{id}/status: resolves the live availability of one room, including
//     the human readable message and the next change timestamp when known.
//   - GET /bookings, POST /bookings, GET /bookings/{id}, PUT /bookings/{id},
//     DELETE /bookings/{id}: booking endpoints exchanging the `bookingDTO` payload
//     defined in booking_handler.go. `GET /bookings?room_id={id}` narrows the list
//     to one room. Conflicting create and update requests answer 409 with the
//     overlapping bookings in the response body.
//   - POST /bookings/{id}/approve, POST /bookings/{id}/decline: administrator
//     decision endpoints driving the pending -> approved/declined state machine.
//   - GET /healthz, GET /metrics: liveness probe and Prometheus metrics.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
