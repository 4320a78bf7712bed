// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package lambdag provides a sharing-preserving graph reducer for a
// dependently-typed lambda calculus.
//
// Terms are converted once into an in-place, mutable node graph with
// parent back-pointers (package graph), then reduced to weak-head normal
// form or full normal form by beta-reduction, case-on-data elimination
// and primitive-operator evaluation. A variable-directed upcopy algorithm
// keeps reduction work shared: a redex reached through two different
// paths is reduced once, and every parent observes the result.
//
// lambdag treats its surface syntax (package term), its primitive
// operators (package primop) and its global definitions table (package
// defs) as collaborators around that core, mirroring how this repository
// is organized: a library package at the root plus a thin cmd/ front end.
package lambdag
