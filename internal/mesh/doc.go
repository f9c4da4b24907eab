// Package mesh generates vertex-index sequences for the mesh topologies used
// by the visualizer: a spectrogram grid, a circular fan, a point cloud and a
// spiral ribbon.
//
// Every generator is a pure function of its Dimensions. Indices reference a
// vertex buffer built elsewhere; winding order is encoded by the order of the
// three indices in each Triangle and must not be changed.
package mesh
