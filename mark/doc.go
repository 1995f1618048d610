// SPDX-License-Identifier: MIT

// Package mark turns a per-cell error indicator into a boolean marking array.
//
// What:
//
//	Mark(eta, theta, strategy) is a pure function over interior cells:
//		• L2: Dörfler bulk criterion on eta², i.e. the smallest set of largest
//		  cells carrying a θ fraction of the total squared mass (the largest
//		  cell is always marked).
//		• Max: eta > θ·max(eta).
//		• Coarsen: eta < θ·max(eta), for selecting cells to merge.
//
// Why:
//
//	The estimator lives outside the mesh engine; this package is the narrow
//	boundary between the two. The mesh container embeds the result into its
//	all-cells array, so exterior and hole entries stay false.
//
// Complexity:
//
//	Max/Coarsen: O(n). L2: O(n log n) (one argsort).
//
// Errors:
//
//	ErrEmptyIndicator, ErrBadTheta, ErrNaNInf, ErrUnknownStrategy.
package mark
